package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentRecalculate(t *testing.T) {
	p := Payment{
		RoomPrice: 400000,
		Items: []PaymentItem{
			{Name: "Cleaning", Price: 60000},
			{Name: "Laundry", Price: 40000},
		},
	}

	p.Recalculate()
	assert.Equal(t, int64(500000), p.TotalAmount)
	assert.Equal(t, int64(500000), p.RemainingAmount)
	assert.Equal(t, PaymentUnpaid, p.Status)

	p.Transactions = append(p.Transactions, PaymentTransaction{Amount: 300000})
	p.Recalculate()
	assert.Equal(t, int64(300000), p.PaidAmount)
	assert.Equal(t, int64(200000), p.RemainingAmount)
	assert.Equal(t, PaymentPartiallyPaid, p.Status)

	p.Transactions = append(p.Transactions, PaymentTransaction{Amount: 200000})
	p.Recalculate()
	assert.Equal(t, int64(0), p.RemainingAmount)
	assert.Equal(t, PaymentPaid, p.Status)
}

func TestContractTypeEndDateFrom(t *testing.T) {
	start := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	year := ContractType{Duration: 1, Unit: UnitYear}
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), year.EndDateFrom(start))

	months := ContractType{Duration: 6, Unit: UnitMonth}
	assert.Equal(t, time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC), months.EndDateFrom(start))

	days := ContractType{Duration: 30, Unit: UnitDay}
	assert.Equal(t, time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC), days.EndDateFrom(start))
}

func TestStudentGraduationDate(t *testing.T) {
	s := Student{EnrollmentYear: 2022}
	grad := s.GraduationDate()
	assert.Equal(t, 2026, grad.Year())
	assert.Equal(t, time.December, grad.Month())
	assert.Equal(t, 31, grad.Day())
}

func TestContractIsExpirable(t *testing.T) {
	now := time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC)
	past := now.AddDate(0, -1, 0)
	future := now.AddDate(0, 1, 0)

	overdue := Contract{Status: ContractConfirmed, EndDate: &past}
	assert.True(t, overdue.IsExpirable(now))

	requested := Contract{Status: ContractPendingCancellation, EndDate: &past}
	assert.True(t, requested.IsExpirable(now))

	running := Contract{Status: ContractConfirmed, EndDate: &future}
	assert.False(t, running.IsExpirable(now))

	cancelled := Contract{Status: ContractCancelled, EndDate: &past}
	assert.False(t, cancelled.IsExpirable(now))

	pending := Contract{Status: ContractPending}
	assert.False(t, pending.IsExpirable(now))
}

func TestRoomHasVacancy(t *testing.T) {
	room := Room{MaximumCapacity: 2, RegisteredStudents: 1}
	assert.True(t, room.HasVacancy())

	room.RegisteredStudents = 2
	assert.False(t, room.HasVacancy())
}
