package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /dashboard/summary
// The headline cards plus the two recent-activity lists of the dashboard.
func (h *DashboardHandler) Summary(c echo.Context) error {
	account := accountID(c)
	now := time.Now()
	currentMonth := now.Format("2006-01")
	currentYear := now.Format("2006")

	var (
		totalStudents  int64
		activeStudents int64
		totalClasses   int64
		defaulters     int64
		paidThisMonth  float64
		pendingMonth   float64
		paidThisYear   float64
	)

	database.DB.Model(&models.Student{}).Where("account_id = ?", account).Count(&totalStudents)
	database.DB.Model(&models.Student{}).
		Where("account_id = ? AND status = ?", account, models.StudentActive).
		Count(&activeStudents)
	database.DB.Model(&models.Class{}).Where("account_id = ?", account).Count(&totalClasses)
	database.DB.Model(&models.Payment{}).
		Where("account_id = ? AND status = ?", account, models.PaymentPending).
		Distinct("student_id").
		Count(&defaulters)

	database.DB.Model(&models.Payment{}).
		Where("account_id = ? AND status = ? AND month_year = ?", account, models.PaymentPaid, currentMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&paidThisMonth)
	database.DB.Model(&models.Payment{}).
		Where("account_id = ? AND status = ? AND month_year = ?", account, models.PaymentPending, currentMonth).
		Select("COALESCE(SUM(amount), 0)").Scan(&pendingMonth)
	database.DB.Model(&models.Payment{}).
		Where("account_id = ? AND status = ? AND month_year LIKE ?", account, models.PaymentPaid, currentYear+"-%").
		Select("COALESCE(SUM(amount), 0)").Scan(&paidThisYear)

	var recentPaid []models.Payment
	database.DB.
		Where("account_id = ? AND status = ?", account, models.PaymentPaid).
		Order("payment_date DESC NULLS LAST, updated_at DESC").
		Limit(5).
		Find(&recentPaid)

	var oldestPending []models.Payment
	database.DB.
		Where("account_id = ? AND status = ?", account, models.PaymentPending).
		Order("month_year ASC").
		Limit(5).
		Find(&oldestPending)

	return c.JSON(http.StatusOK, map[string]any{
		"total_students":     totalStudents,
		"active_students":    activeStudents,
		"total_classes":      totalClasses,
		"defaulter_count":    defaulters,
		"paid_this_month":    paidThisMonth,
		"pending_this_month": pendingMonth,
		"paid_this_year":     paidThisYear,
		"recent_payments":    recentPaid,
		"oldest_pending":     oldestPending,
	})
}
