package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler { return &SettingsHandler{} }

type settingsPayload struct {
	CourtName         string  `json:"court_name"          validate:"required,max=120"`
	ContactPhone      string  `json:"contact_phone"       validate:"max=20"`
	Address           string  `json:"address"`
	OperatingHours    string  `json:"operating_hours"     validate:"max=120"`
	DefaultMonthlyFee float64 `json:"default_monthly_fee" validate:"gte=0"`
}

// GET /settings
// A missing row is created with defaults, so the settings page always loads.
func (h *SettingsHandler) Get(c echo.Context) error {
	account := accountID(c)
	var s models.Settings
	err := database.DB.Where("account_id = ?", account).First(&s).Error
	if err == gorm.ErrRecordNotFound {
		s = models.Settings{
			AccountID:         account,
			CourtName:         "TM Marinho Sports",
			DefaultMonthlyFee: models.DefaultMonthlyFee,
		}
		if err := database.DB.Create(&s).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_CREATE_FAILED"})
		}
		return c.JSON(http.StatusOK, s)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// PUT /settings
func (h *SettingsHandler) Update(c echo.Context) error {
	account := accountID(c)
	var p settingsPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.CourtName = strings.TrimSpace(p.CourtName)
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	var s models.Settings
	err := database.DB.Where("account_id = ?", account).First(&s).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	s.AccountID = account
	s.CourtName = p.CourtName
	s.ContactPhone = p.ContactPhone
	s.Address = p.Address
	s.OperatingHours = p.OperatingHours
	s.DefaultMonthlyFee = p.DefaultMonthlyFee

	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}
