package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

func student(id, startDate, status string, fee float64) models.Student {
	return models.Student{
		ID:         id,
		AccountID:  "acc-1",
		FullName:   "Aluno " + id,
		StartDate:  startDate,
		Status:     status,
		MonthlyFee: fee,
	}
}

func asOf(y int, m time.Month) time.Time {
	return time.Date(y, m, 15, 12, 0, 0, 0, time.UTC)
}

func TestGenerateMissingCharges_MonthRollover(t *testing.T) {
	students := []models.Student{student("s1", "2024-11-01", models.StudentActive, 200)}

	got := GenerateMissingCharges(students, nil, asOf(2025, time.February), 150)

	assert.Len(t, got, 4)
	want := []string{"2024-11", "2024-12", "2025-01", "2025-02"}
	for i, p := range got {
		assert.Equal(t, "s1", p.StudentID)
		assert.Equal(t, want[i], p.MonthYear)
		assert.Equal(t, models.PaymentPending, p.Status)
		assert.Equal(t, 200.0, p.Amount)
		assert.Nil(t, p.PaymentDate)
		assert.Nil(t, p.PaymentMethod)
	}
}

func TestGenerateMissingCharges_SkipsExisting(t *testing.T) {
	students := []models.Student{student("s1", "2025-01-10", models.StudentActive, 100)}
	existing := []models.Payment{
		{StudentID: "s1", MonthYear: "2025-02", Amount: 100, Status: models.PaymentPaid},
	}

	got := GenerateMissingCharges(students, existing, asOf(2025, time.March), 150)

	assert.Len(t, got, 2)
	assert.Equal(t, "2025-01", got[0].MonthYear)
	assert.Equal(t, "2025-03", got[1].MonthYear)
}

func TestGenerateMissingCharges_UnpaddedLedgerKeyStillBlocksMonth(t *testing.T) {
	students := []models.Student{student("s1", "2025-03-01", models.StudentActive, 100)}
	existing := []models.Payment{
		{StudentID: "s1", MonthYear: "2025-3", Amount: 100, Status: models.PaymentPaid},
	}

	got := GenerateMissingCharges(students, existing, asOf(2025, time.March), 150)

	assert.Empty(t, got)
}

func TestGenerateMissingCharges_Idempotent(t *testing.T) {
	students := []models.Student{
		student("s1", "2024-06-01", models.StudentActive, 180),
		student("s2", "2025-01-01", models.StudentActive, 0),
	}
	ref := asOf(2025, time.April)

	first := GenerateMissingCharges(students, nil, ref, 150)
	assert.NotEmpty(t, first)

	second := GenerateMissingCharges(students, first, ref, 150)
	assert.Empty(t, second)
}

func TestGenerateMissingCharges_NoDuplicates(t *testing.T) {
	students := []models.Student{student("s1", "2024-01-01", models.StudentActive, 100)}

	got := GenerateMissingCharges(students, nil, asOf(2025, time.June), 150)

	seen := map[string]bool{}
	for _, p := range got {
		key := p.StudentID + "|" + p.MonthYear
		assert.False(t, seen[key], "duplicate charge %s", key)
		seen[key] = true
	}
	assert.Len(t, got, 18)
}

func TestGenerateMissingCharges_InactiveExcluded(t *testing.T) {
	students := []models.Student{student("s1", "2023-01-01", models.StudentInactive, 100)}

	got := GenerateMissingCharges(students, nil, asOf(2025, time.June), 150)
	assert.Empty(t, got)
}

func TestGenerateMissingCharges_MalformedStartDateSkipsStudentOnly(t *testing.T) {
	students := []models.Student{
		student("bad", "sometime in 2024", models.StudentActive, 100),
		student("ok", "2025-05-01", models.StudentActive, 100),
	}

	got := GenerateMissingCharges(students, nil, asOf(2025, time.May), 150)

	assert.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].StudentID)
}

func TestGenerateMissingCharges_EnrollmentAfterAsOf(t *testing.T) {
	students := []models.Student{student("s1", "2025-09-01", models.StudentActive, 120)}

	got := GenerateMissingCharges(students, nil, asOf(2025, time.June), 150)

	assert.Len(t, got, 1)
	assert.Equal(t, "2025-09", got[0].MonthYear)
}

func TestGenerateMissingCharges_FeeFallback(t *testing.T) {
	students := []models.Student{student("s1", "2025-06-01", models.StudentActive, 0)}

	got := GenerateMissingCharges(students, nil, asOf(2025, time.June), 175)
	assert.Len(t, got, 1)
	assert.Equal(t, 175.0, got[0].Amount)

	// No account default either: system default applies.
	got = GenerateMissingCharges(students, nil, asOf(2025, time.June), 0)
	assert.Equal(t, float64(models.DefaultMonthlyFee), got[0].Amount)
}

func TestAggregate_Totals(t *testing.T) {
	payments := []models.Payment{
		{StudentID: "s1", MonthYear: "2025-03", Amount: 100, Status: models.PaymentPaid},
		{StudentID: "s2", MonthYear: "2025-03", Amount: 50, Status: models.PaymentPaid},
		{StudentID: "s3", MonthYear: "2025-03", Amount: 30, Status: models.PaymentPending},
	}

	sum := Aggregate(payments, 2025, 3)

	assert.Equal(t, 150.0, sum.TotalPaid)
	assert.Equal(t, 30.0, sum.TotalPending)
	assert.Equal(t, 180.0, sum.TotalExpected)
	assert.InDelta(t, 83.33, sum.PaidPercent, 0.01)
	assert.Equal(t, 1, sum.DefaulterCount)
}

func TestAggregate_DefaulterCountedOnce(t *testing.T) {
	payments := []models.Payment{
		{StudentID: "s1", MonthYear: "2025-01", Amount: 100, Status: models.PaymentPending},
		{StudentID: "s1", MonthYear: "2025-02", Amount: 100, Status: models.PaymentPending},
		{StudentID: "s2", MonthYear: "2025-02", Amount: 100, Status: models.PaymentPaid},
	}

	sum := Aggregate(payments, 2025, 0)
	assert.Equal(t, 1, sum.DefaulterCount)
}

func TestAggregate_MonthFilterAndBreakdown(t *testing.T) {
	payments := []models.Payment{
		{StudentID: "s1", MonthYear: "2025-01", Amount: 100, Status: models.PaymentPaid},
		{StudentID: "s1", MonthYear: "2025-02", Amount: 100, Status: models.PaymentPending},
		{StudentID: "s1", MonthYear: "2024-12", Amount: 100, Status: models.PaymentPaid},
	}

	sum := Aggregate(payments, 2025, 1)

	// Totals honour the month filter.
	assert.Equal(t, 100.0, sum.TotalPaid)
	assert.Equal(t, 0.0, sum.TotalPending)

	// Breakdown always covers the whole year.
	assert.Len(t, sum.Months, 12)
	jan, feb := sum.Months[0], sum.Months[1]
	assert.Equal(t, 100.0, jan.Paid)
	assert.Equal(t, 100.0, jan.PaidPercent)
	assert.Equal(t, 100.0, feb.Pending)
	assert.Equal(t, 0.0, feb.PaidPercent)
	assert.Equal(t, 0.0, sum.Months[11].Total) // 2024-12 not in 2025
}

func TestAggregate_EmptyIsZero(t *testing.T) {
	sum := Aggregate(nil, 2025, 0)
	assert.Equal(t, 0.0, sum.TotalPaid)
	assert.Equal(t, 0.0, sum.PaidPercent)
	assert.Equal(t, 0, sum.DefaulterCount)
	for _, m := range sum.Months {
		assert.Equal(t, 0.0, m.PaidPercent)
	}
}

func TestSplitMonthYear(t *testing.T) {
	y, m, err := SplitMonthYear("2024-11")
	assert.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 11, m)

	y, m, err = SplitMonthYear("2024-11-05")
	assert.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, 11, m)

	for _, bad := range []string{"", "2024", "2024-13", "abcd-01", "2024-xx"} {
		_, _, err := SplitMonthYear(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
