package service

import (
	"testing"
	"time"

	"dorm-backend/internal/config"
	"dorm-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWorker(env *testEnv, cfg config.BillingConfig) *BillingWorker {
	return NewBillingWorker(env.billing, env.contracts, cfg)
}

func (w *BillingWorker) atTime(now time.Time) {
	w.now = func() time.Time { return now }
}

func TestWorkerTick_RunsMonthlyOncePerCycle(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	contract := env.seedConfirmedContract(t, student, room, ct)

	worker := newTestWorker(env, config.BillingConfig{RunDay: 5, RunHour: 12})

	// Scheduled hour on the run day.
	env.at(2024, time.February, 5)
	worker.atTime(time.Date(2024, time.February, 5, 13, 0, 0, 0, time.UTC))
	worker.tick()

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).
		Where("contract_id = ?", contract.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// Later ticks in the same cycle do not run billing again.
	worker.atTime(time.Date(2024, time.February, 5, 18, 0, 0, 0, time.UTC))
	worker.tick()
	require.NoError(t, env.db.Model(&models.Payment{}).
		Where("contract_id = ?", contract.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWorkerTick_SkipsOffSchedule(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	env.seedConfirmedContract(t, student, room, ct)

	worker := newTestWorker(env, config.BillingConfig{RunDay: 5, RunHour: 12})

	// Wrong day.
	env.at(2024, time.February, 4)
	worker.atTime(time.Date(2024, time.February, 4, 13, 0, 0, 0, time.UTC))
	worker.tick()

	// Right day, too early.
	env.at(2024, time.February, 5)
	worker.atTime(time.Date(2024, time.February, 5, 11, 0, 0, 0, time.UTC))
	worker.tick()

	var count int64
	require.NoError(t, env.db.Model(&models.Payment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestWorkerTick_ReconcilesExpiredEveryTick(t *testing.T) {
	env := newTestEnv(t)
	env.at(2024, time.January, 15)

	student := env.seedStudent(t, "SV001", 2022)
	room := env.seedRoom(t, "A101", 1, 400000, 4)
	ct := env.seedContractType(t, "Six months", 6, models.UnitMonth)
	contract := env.seedConfirmedContract(t, student, room, ct)

	worker := newTestWorker(env, config.BillingConfig{RunDay: 5, RunHour: 12})

	// Off-schedule tick long after the term ended still flips the status.
	env.at(2024, time.October, 2)
	worker.atTime(time.Date(2024, time.October, 2, 3, 0, 0, 0, time.UTC))
	worker.tick()

	var fresh models.Contract
	require.NoError(t, env.db.First(&fresh, contract.ID).Error)
	assert.Equal(t, models.ContractExpired, fresh.Status)
}
