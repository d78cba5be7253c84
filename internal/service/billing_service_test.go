package service

import (
	"testing"
	"time"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMonthlyPayments(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	cleaning := env.seedService(t, "Cleaning", 60000)
	laundry := env.seedService(t, "Laundry", 40000)
	contract := env.seedConfirmedContract(t, student, room, ct, cleaning.ID, laundry.ID)

	env.at(2024, time.February, 5)
	result, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-02", result.Cycle)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, 0, result.Skipped)

	payment, err := env.payments.FindForContractCycle(contract.ID, "2024-02")
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, student.Code, payment.StudentCode)
	assert.Equal(t, room.Price, payment.RoomPrice)
	assert.Len(t, payment.Items, 2)
	assert.Equal(t, int64(500000), payment.TotalAmount)
	assert.Equal(t, int64(500000), payment.RemainingAmount)
	assert.Equal(t, models.PaymentUnpaid, payment.Status)
}

func TestGenerateMonthlyPayments_OncePerCycle(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	contract := env.seedConfirmedContract(t, student, room, ct)

	env.at(2024, time.February, 5)
	first, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Created)

	// Same cycle: nothing new, the existing bill is skipped.
	second, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, 1, second.Skipped)

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).
		Where("contract_id = ?", contract.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Next month is a fresh cycle.
	env.at(2024, time.March, 5)
	third, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Created)
}

func TestGenerateMonthlyPayments_SkipsInactiveContracts(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)

	active := env.seedStudent(t, "SV001", 2022)
	env.seedConfirmedContract(t, active, room, ct)

	// Still pending: never billed.
	pending := env.seedStudent(t, "SV002", 2022)
	_, err := env.contracts.Create(CreateContractRequest{
		StudentCode: pending.Code, RoomID: room.ID, ContractTypeID: ct.ID,
	})
	require.NoError(t, err)

	env.at(2024, time.February, 5)
	result, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	// Before the term starts there is nothing to bill either: the January
	// window does not contain a February 1 start date.
	env2 := newTestEnv(t)
	env2.at(2024, time.January, 15)
	s := env2.seedStudent(t, "SV001", 2022)
	r := env2.seedRoom(t, "B202", 2, 300000, 4)
	c := env2.seedContractType(t, "Six months", 6, models.UnitMonth)
	env2.seedConfirmedContract(t, s, r, c)

	result, err = env2.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
}

func TestApplyPayment_PartialThenFull(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	svc := env.seedService(t, "Cleaning", 100000)
	contract := env.seedConfirmedContract(t, student, room, ct, svc.ID)

	env.at(2024, time.February, 5)
	_, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	payment, err := env.payments.FindForContractCycle(contract.ID, "2024-02")
	require.NoError(t, err)
	require.Equal(t, int64(500000), payment.TotalAmount)

	partial, err := env.billing.ApplyPayment(payment.ID, MethodCash, 300000, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartiallyPaid, partial.Status)
	assert.Equal(t, int64(300000), partial.PaidAmount)
	assert.Equal(t, int64(200000), partial.RemainingAmount)

	full, err := env.billing.ApplyPayment(payment.ID, MethodBank, 200000, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, full.Status)
	assert.Equal(t, int64(0), full.RemainingAmount)
	assert.Len(t, full.Transactions, 2)
}

func TestApplyPayment_InvalidAmount(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	_, err := env.billing.ApplyPayment(1, MethodCash, 0, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	_, err = env.billing.ApplyPayment(1, MethodCash, -500, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
}

func TestApplyPayment_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	_, err := env.billing.ApplyPayment(999, MethodCash, 1000, nil)
	assert.ErrorIs(t, err, apperr.ErrPaymentNotFound)
}

func TestCallback_AllocatesOldestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	contract := env.seedConfirmedContract(t, student, room, ct)

	env.at(2024, time.February, 5)
	_, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	env.at(2024, time.March, 5)
	_, err = env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)

	// Covers February in full and half of March.
	require.NoError(t, env.billing.ApplyExternalCallback(student.Code, 0, 600000))

	feb, err := env.payments.FindForContractCycle(contract.ID, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, feb.Status)
	assert.Equal(t, int64(0), feb.RemainingAmount)

	mar, err := env.payments.FindForContractCycle(contract.ID, "2024-03")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPartiallyPaid, mar.Status)
	assert.Equal(t, int64(200000), mar.RemainingAmount)
	require.Len(t, mar.Transactions, 1)
	assert.Equal(t, MethodGateway, mar.Transactions[0].Method)
}

func TestCallback_SilentNoOps(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	contract := env.seedConfirmedContract(t, student, room, ct)

	env.at(2024, time.February, 5)
	_, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)

	// Failed gateway result code.
	require.NoError(t, env.billing.ApplyExternalCallback(student.Code, 49, 400000))
	// Unknown student.
	require.NoError(t, env.billing.ApplyExternalCallback("NOBODY", 0, 400000))
	// Student with no outstanding payments.
	other := env.seedStudent(t, "SV099", 2022)
	require.NoError(t, env.billing.ApplyExternalCallback(other.Code, 0, 400000))

	payment, err := env.payments.FindForContractCycle(contract.ID, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, payment.Status)
	assert.Empty(t, payment.Transactions)
}

func TestCallback_ExcessNotAllocated(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	contract := env.seedConfirmedContract(t, student, room, ct)

	env.at(2024, time.February, 5)
	_, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)

	require.NoError(t, env.billing.ApplyExternalCallback(student.Code, 0, 1000000))

	payment, err := env.payments.FindForContractCycle(contract.ID, "2024-02")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, payment.Status)
	// Settled at the billed amount; the surplus is never recorded.
	assert.Equal(t, int64(400000), payment.PaidAmount)
	assert.Equal(t, int64(0), payment.RemainingAmount)
}

func TestListByStudentCode(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	env.seedConfirmedContract(t, student, room, ct)

	env.at(2024, time.February, 5)
	_, err := env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)
	env.at(2024, time.March, 5)
	_, err = env.billing.GenerateMonthlyPayments(nil)
	require.NoError(t, err)

	payments, err := env.billing.ListByStudentCode(student.Code)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, "2024-02", payments[0].Cycle)
	assert.Equal(t, "2024-03", payments[1].Cycle)

	_, err = env.billing.ListByStudentCode("NOBODY")
	assert.ErrorIs(t, err, apperr.ErrStudentNotFound)
}
