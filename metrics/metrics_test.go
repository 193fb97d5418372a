package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsCommittedStatusOnError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/unauthorized-count", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusUnauthorized, "MISSING_TOKEN")
	})

	assert.Error(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	got := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/unauthorized-count", "401"))
	assert.Equal(t, 1.0, got)
	none := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/unauthorized-count", "200"))
	assert.Equal(t, 0.0, none)
}

func TestMiddleware_CountsSuccess(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/ok-count", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	got := testutil.ToFloat64(requestsTotal.WithLabelValues("GET", "/ok-count", "200"))
	assert.Equal(t, 1.0, got)
}
