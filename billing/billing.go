// Package billing derives the monthly charges a student owes and rolls the
// ledger up for the dashboard and finance views. All functions are pure:
// they work over already-loaded records and never touch the database.
package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

// GenerateMissingCharges walks, for each active student, every month from the
// enrollment month through the asOf month and emits a pending charge for each
// (student, month) pair the ledger does not already contain. Students with an
// unparseable start date are skipped; one bad record never aborts the batch.
// Running it again over a ledger that includes its own output yields nothing.
func GenerateMissingCharges(students []models.Student, existing []models.Payment, asOf time.Time, defaultFee float64) []models.Payment {
	have := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		my := p.MonthYear
		// Re-pad ledger rows written before the period key was canonical,
		// so "2025-3" still blocks a "2025-03" charge.
		if y, m, err := SplitMonthYear(my); err == nil {
			my = fmt.Sprintf("%04d-%02d", y, m)
		}
		have[p.StudentID+"|"+my] = struct{}{}
	}

	var out []models.Payment
	for _, s := range students {
		if s.Status != models.StudentActive {
			continue
		}
		year, month, err := SplitMonthYear(s.StartDate)
		if err != nil {
			continue
		}

		fee := s.MonthlyFee
		if fee <= 0 {
			fee = defaultFee
		}
		if fee <= 0 {
			fee = models.DefaultMonthlyFee
		}

		// Enrollment after the as-of month still charges that single month.
		endYear, endMonth := asOf.Year(), int(asOf.Month())
		if year > endYear || (year == endYear && month > endMonth) {
			endYear, endMonth = year, month
		}

		for year < endYear || (year == endYear && month <= endMonth) {
			my := fmt.Sprintf("%04d-%02d", year, month)
			if _, ok := have[s.ID+"|"+my]; !ok {
				have[s.ID+"|"+my] = struct{}{}
				out = append(out, models.Payment{
					AccountID: s.AccountID,
					StudentID: s.ID,
					MonthYear: my,
					Amount:    fee,
					Status:    models.PaymentPending,
				})
			}
			month++
			if month > 12 {
				month = 1
				year++
			}
		}
	}
	return out
}

// MonthTotal is one row of the per-year breakdown.
type MonthTotal struct {
	Month       int     `json:"month"`
	Paid        float64 `json:"paid"`
	Pending     float64 `json:"pending"`
	Total       float64 `json:"total"`
	PaidPercent float64 `json:"paid_percent"`
}

// Summary aggregates a filtered slice of the ledger.
type Summary struct {
	TotalPaid      float64      `json:"total_paid"`
	TotalPending   float64      `json:"total_pending"`
	TotalExpected  float64      `json:"total_expected"`
	PaidPercent    float64      `json:"paid_percent"`
	DefaulterCount int          `json:"defaulter_count"`
	Months         []MonthTotal `json:"months"`
}

// Aggregate filters payments by year and optionally month (month == 0 keeps
// all months) and sums paid/pending amounts, counting each student with at
// least one pending payment once. Months always covers the 12 months of the
// given year regardless of the month filter, for the monthly results table.
func Aggregate(payments []models.Payment, year, month int) Summary {
	sum := Summary{Months: make([]MonthTotal, 12)}
	for i := range sum.Months {
		sum.Months[i].Month = i + 1
	}

	defaulters := make(map[string]struct{})
	for _, p := range payments {
		py, pm, err := SplitMonthYear(p.MonthYear)
		if err != nil || py != year {
			continue
		}

		if pm >= 1 && pm <= 12 {
			mt := &sum.Months[pm-1]
			switch p.Status {
			case models.PaymentPaid:
				mt.Paid += p.Amount
			case models.PaymentPending:
				mt.Pending += p.Amount
			}
		}

		if month != 0 && pm != month {
			continue
		}
		switch p.Status {
		case models.PaymentPaid:
			sum.TotalPaid += p.Amount
		case models.PaymentPending:
			sum.TotalPending += p.Amount
			defaulters[p.StudentID] = struct{}{}
		}
	}

	for i := range sum.Months {
		mt := &sum.Months[i]
		mt.Total = mt.Paid + mt.Pending
		if mt.Total > 0 {
			mt.PaidPercent = mt.Paid / mt.Total * 100
		}
	}

	sum.TotalExpected = sum.TotalPaid + sum.TotalPending
	if sum.TotalExpected > 0 {
		sum.PaidPercent = sum.TotalPaid / sum.TotalExpected * 100
	}
	sum.DefaulterCount = len(defaulters)
	return sum
}

// SplitMonthYear parses the leading "YYYY-MM" of a period or date key.
func SplitMonthYear(s string) (year, month int, err error) {
	parts := strings.SplitN(s, "-", 3)
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid period %q", s)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period %q", s)
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid period %q", s)
	}
	return year, month, nil
}
