package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 99999-9999", FormatPhone("11999999999"))
	assert.Equal(t, "(11) 9999-9999", FormatPhone("1199999999"))
	assert.Equal(t, "(11) 99999-9999", FormatPhone("(11) 99999-9999"))
	// Unformattable lengths pass through.
	assert.Equal(t, "123", FormatPhone("123"))
}

func TestCleanRG(t *testing.T) {
	assert.Equal(t, "123456789", CleanRG("12.345.678-9"))
	assert.Equal(t, "123456789", CleanRG("123456789"))
	assert.Equal(t, "", CleanRG("n/a"))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/5511999999999", WhatsAppLink("(11) 99999-9999", ""))
	// Country code already present.
	assert.Equal(t, "https://wa.me/5511999999999", WhatsAppLink("5511999999999", ""))
	assert.Equal(t,
		"https://wa.me/5511999999999?text=Ol%C3%A1%21",
		WhatsAppLink("11999999999", "Olá!"))
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "março de 2025", FormatMonthYear("2025-03"))
	assert.Equal(t, "novembro de 2024", FormatMonthYear("2024-11"))
	assert.Equal(t, "não informado", FormatMonthYear("não informado"))
}
