package handlers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
)

func validStudentPayload() studentPayload {
	return studentPayload{
		FullName:   "João da Silva",
		Phone:      "(11) 99999-9999",
		StartDate:  "2025-01-15",
		Status:     models.StudentActive,
		MonthlyFee: 180,
	}
}

func TestStudentPayload_Valid(t *testing.T) {
	p := validStudentPayload()
	p.normalize()
	assert.NoError(t, validate.Struct(&p))
}

func TestStudentPayload_Normalize(t *testing.T) {
	p := validStudentPayload()
	p.FullName = "  João   da  Silva "
	p.Status = " active "
	p.normalize()

	assert.Equal(t, "João da Silva", p.FullName)
	assert.Equal(t, "active", p.Status)
}

func TestStudentPayload_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*studentPayload)
		field  string
	}{
		{"missing name", func(p *studentPayload) { p.FullName = "" }, "fullname"},
		{"bad start date", func(p *studentPayload) { p.StartDate = "15/01/2025" }, "startdate"},
		{"bad status", func(p *studentPayload) { p.Status = "paused" }, "status"},
		{"negative fee", func(p *studentPayload) { p.MonthlyFee = -1 }, "monthlyfee"},
		{"bad birth date", func(p *studentPayload) { p.BirthDate = "not-a-date" }, "birthdate"},
		{"bad class id", func(p *studentPayload) { p.ClassIDs = []string{"nope"} }, "classids[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validStudentPayload()
			tt.mutate(&p)
			p.normalize()
			err := validate.Struct(&p)
			assert.Error(t, err)
			errs := fieldErrors(err)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestStudentPayload_Apply(t *testing.T) {
	p := validStudentPayload()
	p.BirthDate = "2010-04-02"
	p.RG = "12.345.678-9"
	p.normalize()

	var s models.Student
	p.apply(&s)

	assert.Equal(t, "João da Silva", s.FullName)
	assert.Equal(t, "11999999999", s.Phone) // stored clean, masked on display
	assert.Equal(t, "123456789", s.RG)
	assert.NotNil(t, s.BirthDate)
	assert.Equal(t, "2025-01-15", s.StartDate)
}

func TestClassPayload_Validation(t *testing.T) {
	p := classPayload{
		Name:       "Beach Tennis Iniciante",
		DaysOfWeek: []string{"Segunda", " QUARTA "},
		StartTime:  "18:00",
		EndTime:    "19:00",
	}
	p.normalize()

	assert.NoError(t, validate.Struct(&p))
	assert.Equal(t, []string{"segunda", "quarta"}, p.DaysOfWeek)
	assert.Equal(t, 12, p.Capacity) // default when omitted

	p.StartTime = "6pm"
	assert.Error(t, validate.Struct(&p))

	p.StartTime = "18:00"
	p.DaysOfWeek = nil
	assert.Error(t, validate.Struct(&p))
}

func TestPaymentPayload_ApplyTransitions(t *testing.T) {
	sid := uuid.NewString()
	p := paymentPayload{
		StudentID:     sid,
		MonthYear:     "2025-03",
		Amount:        180,
		Status:        models.PaymentPaid,
		PaymentDate:   "2025-03-10",
		PaymentMethod: "pix",
	}
	p.normalize()
	assert.NoError(t, validate.Struct(&p))

	var pm models.Payment
	p.apply(&pm)
	assert.Equal(t, models.PaymentPaid, pm.Status)
	assert.Equal(t, "2025-03-10", *pm.PaymentDate)
	assert.Equal(t, "pix", *pm.PaymentMethod)

	// Flipping back to pending clears date and method.
	p.Status = models.PaymentPending
	p.apply(&pm)
	assert.Equal(t, models.PaymentPending, pm.Status)
	assert.Nil(t, pm.PaymentDate)
	assert.Nil(t, pm.PaymentMethod)
}

func TestPaymentPayload_Invalid(t *testing.T) {
	p := paymentPayload{StudentID: "not-a-uuid", MonthYear: "2025-03", Amount: 0, Status: "refunded"}
	err := validate.Struct(&p)
	assert.Error(t, err)
	errs := fieldErrors(err)
	assert.Contains(t, errs, "studentid")
	assert.Contains(t, errs, "amount")
	assert.Contains(t, errs, "status")
}

func TestPaymentPayload_CanonicalizePeriod(t *testing.T) {
	p := paymentPayload{MonthYear: "2025-3"}
	assert.NoError(t, p.canonicalizePeriod())
	assert.Equal(t, "2025-03", p.MonthYear)

	p.MonthYear = "2025-12"
	assert.NoError(t, p.canonicalizePeriod())
	assert.Equal(t, "2025-12", p.MonthYear)

	p.MonthYear = "março-2025"
	assert.Error(t, p.canonicalizePeriod())
}

func TestAtoiOr(t *testing.T) {
	assert.Equal(t, 7, atoiOr("7", 1))
	assert.Equal(t, 1, atoiOr("", 1))
	assert.Equal(t, 1, atoiOr("x", 1))
}
