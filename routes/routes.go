package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/jasonmoraesteodoro/tmmarinhosports/config"
	"github.com/jasonmoraesteodoro/tmmarinhosports/handlers"
	"github.com/jasonmoraesteodoro/tmmarinhosports/metrics"
	"github.com/jasonmoraesteodoro/tmmarinhosports/middlewares"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret, cfg.JWTTTLHours)
	std := handlers.NewStudentHandler()
	cls := handlers.NewClassHandler()
	pay := handlers.NewPaymentHandler()
	set := handlers.NewSettingsHandler()
	dash := handlers.NewDashboardHandler()
	fin := handlers.NewFinanceHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.GET("/metrics", metrics.Handler())
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	// ===== Protected (single admin per account) =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("", authMW)

	api.GET("/auth/me", auth.Me)
	api.PUT("/auth/password", auth.ChangePassword)

	api.GET("/students", std.List)
	api.POST("/students", std.Create)
	api.GET("/students/:id", std.Get)
	api.PUT("/students/:id", std.Update)
	api.DELETE("/students/:id", std.Delete)
	api.GET("/students/:id/payments", std.Payments)
	api.GET("/students/:id/classes", std.Classes)

	api.GET("/classes", cls.List)
	api.POST("/classes", cls.Create)
	api.PUT("/classes/:id", cls.Update)
	api.DELETE("/classes/:id", cls.Delete)

	api.GET("/payments", pay.List)
	api.POST("/payments", pay.Create)
	api.PUT("/payments/:id", pay.Update)
	api.DELETE("/payments/:id", pay.Delete)
	api.POST("/payments/:id/mark-paid", pay.MarkPaid)
	api.POST("/payments/:id/mark-pending", pay.MarkPending)
	api.POST("/payments/generate", pay.Generate)

	api.GET("/dashboard/summary", dash.Summary)
	api.GET("/finance/report", fin.Report)

	api.GET("/settings", set.Get)
	api.PUT("/settings", set.Update)
}
