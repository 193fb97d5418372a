package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jasonmoraesteodoro/tmmarinhosports/billing"
	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/logger"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

type PaymentHandler struct{}

func NewPaymentHandler() *PaymentHandler { return &PaymentHandler{} }

type paymentPayload struct {
	StudentID     string  `json:"student_id"     validate:"required,uuid4"`
	MonthYear     string  `json:"month_year"     validate:"required"`
	Amount        float64 `json:"amount"         validate:"gt=0"`
	Status        string  `json:"status"         validate:"required,oneof=pending paid"`
	PaymentDate   string  `json:"payment_date"   validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod string  `json:"payment_method" validate:"max=30"`
}

func (p *paymentPayload) normalize() {
	p.StudentID = strings.TrimSpace(p.StudentID)
	p.MonthYear = strings.TrimSpace(p.MonthYear)
	p.Status = strings.TrimSpace(p.Status)
	p.PaymentDate = strings.TrimSpace(p.PaymentDate)
	p.PaymentMethod = strings.TrimSpace(p.PaymentMethod)
}

// canonicalizePeriod rewrites the period key as zero-padded YYYY-MM, so
// "2025-3" and "2025-03" cannot coexist as two charges for the same month.
func (p *paymentPayload) canonicalizePeriod() error {
	y, m, err := billing.SplitMonthYear(p.MonthYear)
	if err != nil {
		return err
	}
	p.MonthYear = fmt.Sprintf("%04d-%02d", y, m)
	return nil
}

// apply carries the payload onto the row, keeping date/method only for paid.
func (p *paymentPayload) apply(pm *models.Payment) {
	pm.StudentID = p.StudentID
	pm.MonthYear = p.MonthYear
	pm.Amount = p.Amount
	pm.Status = p.Status
	if p.Status == models.PaymentPaid {
		if p.PaymentDate != "" {
			pm.PaymentDate = &p.PaymentDate
		}
		if p.PaymentMethod != "" {
			pm.PaymentMethod = &p.PaymentMethod
		}
	} else {
		pm.PaymentDate = nil
		pm.PaymentMethod = nil
	}
}

// GET /payments?student_id=&status=&month_year=&year=
func (h *PaymentHandler) List(c echo.Context) error {
	tx := database.DB.Where("account_id = ?", accountID(c))

	if v := strings.TrimSpace(c.QueryParam("student_id")); v != "" {
		tx = tx.Where("student_id = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("status")); v != "" {
		tx = tx.Where("status = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("month_year")); v != "" {
		tx = tx.Where("month_year = ?", v)
	}
	if v := strings.TrimSpace(c.QueryParam("year")); v != "" {
		tx = tx.Where("month_year LIKE ?", v+"-%")
	}

	var items []models.Payment
	if err := tx.Order("month_year DESC, created_at DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// POST /payments
func (h *PaymentHandler) Create(c echo.Context) error {
	account := accountID(c)
	var p paymentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if err := p.canonicalizePeriod(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"month_year": "format YYYY-MM"},
		})
	}

	// One charge per (student, month). Pre-check before the unique index bites.
	var dup int64
	database.DB.Model(&models.Payment{}).
		Where("account_id = ? AND student_id = ? AND month_year = ?", account, p.StudentID, p.MonthYear).
		Count(&dup)
	if dup > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "DUPLICATE_CHARGE"})
	}

	pm := models.Payment{AccountID: account}
	p.apply(&pm)
	if err := database.DB.Create(&pm).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, pm)
}

// PUT /payments/:id
func (h *PaymentHandler) Update(c echo.Context) error {
	account := accountID(c)
	var existing models.Payment
	if err := database.DB.First(&existing, "id = ? AND account_id = ?", c.Param("id"), account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p paymentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}
	if err := p.canonicalizePeriod(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"month_year": "format YYYY-MM"},
		})
	}

	if p.StudentID != existing.StudentID || p.MonthYear != existing.MonthYear {
		var dup int64
		database.DB.Model(&models.Payment{}).
			Where("account_id = ? AND student_id = ? AND month_year = ? AND id <> ?",
				account, p.StudentID, p.MonthYear, existing.ID).
			Count(&dup)
		if dup > 0 {
			return c.JSON(http.StatusConflict, map[string]string{"error": "DUPLICATE_CHARGE"})
		}
	}

	p.apply(&existing)
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /payments/:id
func (h *PaymentHandler) Delete(c echo.Context) error {
	err := database.DB.Delete(&models.Payment{}, "id = ? AND account_id = ?", c.Param("id"), accountID(c)).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

type markPaidReq struct {
	PaymentDate   string `json:"payment_date"   validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"payment_method" validate:"required,max=30"`
}

// POST /payments/:id/mark-paid
func (h *PaymentHandler) MarkPaid(c echo.Context) error {
	account := accountID(c)
	var req markPaidReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	var pm models.Payment
	if err := database.DB.First(&pm, "id = ? AND account_id = ?", c.Param("id"), account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	pm.Status = models.PaymentPaid
	pm.PaymentDate = &req.PaymentDate
	pm.PaymentMethod = &req.PaymentMethod
	if err := database.DB.Save(&pm).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pm)
}

// POST /payments/:id/mark-pending
// Reverses a paid charge: clears the payment date and method.
func (h *PaymentHandler) MarkPending(c echo.Context) error {
	account := accountID(c)
	var pm models.Payment
	if err := database.DB.First(&pm, "id = ? AND account_id = ?", c.Param("id"), account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	pm.Status = models.PaymentPending
	pm.PaymentDate = nil
	pm.PaymentMethod = nil
	err := database.DB.Model(&pm).Select("status", "payment_date", "payment_method").Updates(&pm).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, pm)
}

type generateReq struct {
	StudentIDs []string `json:"student_ids" validate:"omitempty,dive,uuid4"`
}

// POST /payments/generate
// Derives every missing monthly charge from enrollment through the current
// month and inserts them in one batch. Empty student_ids means all active
// students.
func (h *PaymentHandler) Generate(c echo.Context) error {
	account := accountID(c)
	var req generateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	tx := database.DB.Where("account_id = ?", account)
	if len(req.StudentIDs) > 0 {
		tx = tx.Where("id IN ?", req.StudentIDs)
	}
	var students []models.Student
	if err := tx.Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var existing []models.Payment
	if err := database.DB.Where("account_id = ?", account).Find(&existing).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var settings models.Settings
	defaultFee := float64(models.DefaultMonthlyFee)
	if err := database.DB.Where("account_id = ?", account).First(&settings).Error; err == nil {
		defaultFee = settings.DefaultMonthlyFee
	}

	charges := billing.GenerateMissingCharges(students, existing, time.Now(), defaultFee)
	if charges == nil {
		charges = []models.Payment{}
	}
	if len(charges) > 0 {
		if err := database.DB.Create(&charges).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
	}
	logger.Get().Info("generated missing charges",
		zap.Int("count", len(charges)),
		zap.Int("students", len(students)),
	)
	return c.JSON(http.StatusCreated, map[string]any{
		"generated": len(charges),
		"payments":  charges,
	})
}
