package service

import (
	"context"
	"log"
	"time"

	"dorm-backend/internal/config"
)

// BillingWorker is the scheduled side of billing: it reconciles expired
// contracts every tick and fires the monthly run on the configured day and
// hour, at most once per calendar month.
type BillingWorker struct {
	billing   *BillingService
	contracts *ContractService
	cfg       config.BillingConfig

	now func() time.Time

	// cycle of the last completed monthly run, YYYY-MM
	lastRun string
}

func NewBillingWorker(billing *BillingService, contracts *ContractService, cfg config.BillingConfig) *BillingWorker {
	return &BillingWorker{
		billing:   billing,
		contracts: contracts,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Start begins the background worker loop
func (w *BillingWorker) Start(ctx context.Context) {
	interval := w.cfg.PollInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("Billing worker started - polling every %s, monthly run on day %d at %02d:00",
		interval, w.cfg.RunDay, w.cfg.RunHour)

	for {
		select {
		case <-ctx.Done():
			log.Println("Billing worker stopped")
			return
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *BillingWorker) tick() {
	now := w.now()

	if flipped, err := w.contracts.ReconcileExpired(); err != nil {
		log.Printf("Error reconciling expired contracts: %v", err)
	} else if flipped > 0 {
		log.Printf("Marked %d contracts as expired", flipped)
	}

	cycle := now.Format("2006-01")
	if now.Day() != w.cfg.RunDay || now.Hour() < w.cfg.RunHour || w.lastRun == cycle {
		return
	}

	if _, err := w.billing.GenerateMonthlyPayments(nil); err != nil {
		log.Printf("Error running monthly billing: %v", err)
		return
	}
	w.lastRun = cycle
}
