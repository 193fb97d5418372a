// Package utils holds the display helpers the frontend shares with reports:
// Brazilian phone masks, WhatsApp links and period labels.
package utils

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/jasonmoraesteodoro/tmmarinhosports/billing"
)

// CleanPhone strips everything that is not a digit.
func CleanPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanRG normalizes an RG to its digits, dropping dots and dashes so
// "12.345.678-9" and "123456789" compare equal.
func CleanRG(rg string) string {
	return CleanPhone(rg)
}

// FormatPhone renders a BR phone as (11) 99999-9999 (mobile) or
// (11) 9999-9999 (landline). Anything else comes back unchanged.
func FormatPhone(phone string) string {
	cleaned := CleanPhone(phone)
	switch len(cleaned) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", cleaned[:2], cleaned[2:7], cleaned[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", cleaned[:2], cleaned[2:6], cleaned[6:])
	}
	return phone
}

// WhatsAppLink builds a wa.me link, prefixing the 55 country code when missing.
func WhatsAppLink(phone, message string) string {
	cleaned := CleanPhone(phone)
	if !strings.HasPrefix(cleaned, "55") {
		cleaned = "55" + cleaned
	}
	link := "https://wa.me/" + cleaned
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link
}

var monthNames = [12]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName returns the pt-BR name for month 1..12, or "" out of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// FormatMonthYear turns "2025-03" into "março de 2025". Unparseable periods
// come back unchanged.
func FormatMonthYear(monthYear string) string {
	year, month, err := billing.SplitMonthYear(monthYear)
	if err != nil {
		return monthYear
	}
	return fmt.Sprintf("%s de %d", MonthName(month), year)
}
