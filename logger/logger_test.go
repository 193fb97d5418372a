package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMiddleware_LogsCommittedStatusOnError(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log = zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "MISSING_TOKEN")
	})

	assert.Error(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(http.StatusUnauthorized), entries[0].ContextMap()["status"])
	}
}

func TestMiddleware_LogsSuccessStatus(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log = zap.New(core)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	assert.NoError(t, h(c))
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	}
}
