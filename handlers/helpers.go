package handlers

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// accountID returns the tenant id RequireAuth attached to the context.
func accountID(c echo.Context) string {
	id, _ := c.Get("account_id").(string)
	return id
}

// atoiOr parses s, falling back to def when it is empty or malformed.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// fieldErrors flattens validator output into {"field": "rule"} the way the
// forms expect it.
func fieldErrors(err error) map[string]string {
	errs := map[string]string{}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range ve {
		errs[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return errs
}
