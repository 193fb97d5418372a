package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, sub, name string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  sub,
		"name": name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signToken() failed: %v", err)
	}
	return tok
}

func request(authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/students", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRequireAuth_ValidToken(t *testing.T) {
	tok := signToken(t, testSecret, "acc-123", "Jason", time.Hour)
	ctx, rec := request("Bearer " + tok)

	called := false
	h := RequireAuth(testSecret)(func(c echo.Context) error {
		called = true
		assert.Equal(t, "acc-123", c.Get("account_id"))
		assert.Equal(t, "Jason", c.Get("name"))
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(ctx))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	ctx, _ := request("")
	h := RequireAuth(testSecret)(func(c echo.Context) error { return nil })

	err := h(ctx)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	ctx, _ := request("Token abc")
	h := RequireAuth(testSecret)(func(c echo.Context) error { return nil })

	err := h(ctx)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_WrongSecret(t *testing.T) {
	tok := signToken(t, "other-secret", "acc-123", "Jason", time.Hour)
	ctx, _ := request("Bearer " + tok)
	h := RequireAuth(testSecret)(func(c echo.Context) error { return nil })

	err := h(ctx)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	tok := signToken(t, testSecret, "acc-123", "Jason", -time.Hour)
	ctx, _ := request("Bearer " + tok)
	h := RequireAuth(testSecret)(func(c echo.Context) error { return nil })

	err := h(ctx)
	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
