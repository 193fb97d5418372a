package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jasonmoraesteodoro/tmmarinhosports/billing"
	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

type FinanceHandler struct{}

func NewFinanceHandler() *FinanceHandler { return &FinanceHandler{} }

// GET /finance/report?year=2025&month=3
// month omitted (or 0) aggregates the whole year. The monthly breakdown
// always covers the selected year.
func (h *FinanceHandler) Report(c echo.Context) error {
	account := accountID(c)
	year := atoiOr(c.QueryParam("year"), time.Now().Year())
	month := atoiOr(c.QueryParam("month"), 0)
	if month < 0 || month > 12 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"month": "must be 1-12"},
		})
	}

	var payments []models.Payment
	if err := database.DB.Where("account_id = ?", account).Find(&payments).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	summary := billing.Aggregate(payments, year, month)

	// Year selector: every year seen in the ledger plus the current one.
	yearSet := map[int]struct{}{time.Now().Year(): {}}
	for _, p := range payments {
		if y, _, err := billing.SplitMonthYear(p.MonthYear); err == nil {
			yearSet[y] = struct{}{}
		}
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	var activeStudents int64
	database.DB.Model(&models.Student{}).
		Where("account_id = ? AND status = ?", account, models.StudentActive).
		Count(&activeStudents)

	return c.JSON(http.StatusOK, map[string]any{
		"year":            year,
		"month":           month,
		"summary":         summary,
		"active_students": activeStudents,
		"available_years": years,
	})
}
