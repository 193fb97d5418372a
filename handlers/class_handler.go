package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

type ClassHandler struct{}

func NewClassHandler() *ClassHandler { return &ClassHandler{} }

type classPayload struct {
	Name       string   `json:"name"         validate:"required,max=100"`
	DaysOfWeek []string `json:"days_of_week" validate:"required,min=1,dive,required"`
	StartTime  string   `json:"start_time"   validate:"required,datetime=15:04"`
	EndTime    string   `json:"end_time"     validate:"required,datetime=15:04"`
	Capacity   int      `json:"capacity"     validate:"gte=0"`
}

func (p *classPayload) normalize() {
	p.Name = strings.Join(strings.Fields(p.Name), " ")
	for i := range p.DaysOfWeek {
		p.DaysOfWeek[i] = strings.ToLower(strings.TrimSpace(p.DaysOfWeek[i]))
	}
	if p.Capacity == 0 {
		p.Capacity = 12
	}
}

func (p *classPayload) apply(cl *models.Class) error {
	days, err := json.Marshal(p.DaysOfWeek)
	if err != nil {
		return err
	}
	cl.Name = p.Name
	cl.DaysOfWeek = datatypes.JSON(days)
	cl.StartTime = p.StartTime
	cl.EndTime = p.EndTime
	cl.Capacity = p.Capacity
	return nil
}

// GET /classes
func (h *ClassHandler) List(c echo.Context) error {
	var items []models.Class
	err := database.DB.
		Where("account_id = ?", accountID(c)).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /classes
func (h *ClassHandler) Create(c echo.Context) error {
	var p classPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	cl := models.Class{AccountID: accountID(c)}
	if err := p.apply(&cl); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := database.DB.Create(&cl).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, cl)
}

// PUT /classes/:id
func (h *ClassHandler) Update(c echo.Context) error {
	account := accountID(c)
	var existing models.Class
	if err := database.DB.First(&existing, "id = ? AND account_id = ?", c.Param("id"), account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p classPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if err := p.apply(&existing); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /classes/:id
// Detaches every student from the class; student records stay put.
func (h *ClassHandler) Delete(c echo.Context) error {
	account := accountID(c)
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ? AND account_id = ?", id, account).
			Delete(&models.StudentClass{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Class{}, "id = ? AND account_id = ?", id, account).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
