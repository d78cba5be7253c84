package service

import (
	"fmt"
	"log"
	"time"

	"dorm-backend/internal/models"
	"dorm-backend/internal/repository"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

// Payment methods recorded in the settlement history.
const (
	MethodCash    = "CASH"
	MethodBank    = "BANK"
	MethodGateway = "GATEWAY"
)

// BillingService materializes one payment per confirmed contract per
// calendar month and applies incoming money to outstanding payments.
type BillingService struct {
	db           *gorm.DB
	paymentRepo  *repository.PaymentRepository
	contractRepo *repository.ContractRepository
	studentRepo  *repository.StudentRepository
	auditRepo    *repository.AuditRepository

	now func() time.Time
}

func NewBillingService(
	db *gorm.DB,
	paymentRepo *repository.PaymentRepository,
	contractRepo *repository.ContractRepository,
	studentRepo *repository.StudentRepository,
	auditRepo *repository.AuditRepository,
) *BillingService {
	return &BillingService{
		db:           db,
		paymentRepo:  paymentRepo,
		contractRepo: contractRepo,
		studentRepo:  studentRepo,
		auditRepo:    auditRepo,
		now:          time.Now,
	}
}

// SetClock overrides the time source (used by tests and the worker)
func (s *BillingService) SetClock(now func() time.Time) {
	s.now = now
}

// GenerateResult summarizes one monthly billing run
type GenerateResult struct {
	Cycle   string `json:"cycle"`
	Created int    `json:"created"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// GenerateMonthlyPayments bills every confirmed contract whose term
// contains now, once per contract per calendar month. A failure on one
// contract is logged and the run continues; one bad record must never
// block the month's billing.
func (s *BillingService) GenerateMonthlyPayments(adminID *uint) (*GenerateResult, error) {
	now := s.now()
	cycle := now.Format("2006-01")
	result := &GenerateResult{Cycle: cycle}

	contracts, err := s.contractRepo.ActiveInWindow(now)
	if err != nil {
		return nil, err
	}

	for i := range contracts {
		contract := &contracts[i]

		exists, err := s.paymentRepo.ExistsForContractCycle(contract.ID, cycle)
		if err != nil {
			log.Printf("billing %s: contract %d: duplicate check failed: %v", cycle, contract.ID, err)
			result.Failed++
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		if err := s.createPaymentForContract(contract, cycle, now, adminID); err != nil {
			log.Printf("billing %s: contract %d: %v", cycle, contract.ID, err)
			result.Failed++
			continue
		}
		result.Created++
	}

	log.Printf("billing %s: %d created, %d skipped, %d failed",
		cycle, result.Created, result.Skipped, result.Failed)
	if adminID != nil {
		_ = s.auditRepo.CreateAuditLog(adminID, "billing_generate",
			fmt.Sprintf("Billing run %s: %d created, %d skipped, %d failed",
				cycle, result.Created, result.Skipped, result.Failed))
	}

	return result, nil
}

// createPaymentForContract snapshots current room and service prices into
// one payment document for the cycle.
func (s *BillingService) createPaymentForContract(contract *models.Contract, cycle string, now time.Time, adminID *uint) error {
	room := contract.Room
	if room.ID == 0 {
		return apperr.ErrRoomNotFound
	}

	payment := &models.Payment{
		StudentID:   contract.StudentID,
		StudentCode: contract.StudentCode,
		StudentName: contract.FullName,
		ContractID:  contract.ID,
		Cycle:       cycle,
		RoomName:    room.Name,
		RoomFloor:   room.Floor,
		RoomPrice:   room.Price,
		AdminID:     adminID,
	}
	if room.RoomType != nil {
		payment.RoomType = room.RoomType.Name
	}
	if room.RoomBlock != nil {
		payment.RoomBlock = room.RoomBlock.Name
	}
	if contract.ContractType.ID != 0 {
		payment.ContractTypeTitle = contract.ContractType.Title
	}

	for _, attached := range contract.Services {
		if attached.Service.ID == 0 {
			return apperr.ErrServiceNotFound.WithMessagef("service %d missing for contract %d", attached.ServiceID, contract.ID)
		}
		payment.Items = append(payment.Items, models.PaymentItem{
			ServiceID:  attached.ServiceID,
			Name:       attached.Service.Name,
			Price:      attached.Service.Price,
			AttachedAt: attached.AttachedAt,
		})
	}

	payment.Recalculate()
	return s.paymentRepo.Create(payment)
}

// ApplyPayment appends one settlement entry and recomputes the derived
// amounts atomically with it.
func (s *BillingService) ApplyPayment(paymentID uint, method string, amount int64, adminID *uint) (*models.Payment, error) {
	if amount <= 0 {
		return nil, apperr.ErrInvalidAmount
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		payment, err := repo.GetByID(paymentID)
		if err != nil {
			return err
		}
		return s.settle(repo, payment, method, amount)
	})
	if err != nil {
		return nil, err
	}

	if adminID != nil {
		_ = s.auditRepo.CreateAuditLog(adminID, "payment_apply",
			fmt.Sprintf("Applied %d (%s) to payment %d", amount, method, paymentID))
	}

	return s.paymentRepo.GetByID(paymentID)
}

// ApplyExternalCallback allocates a gateway payment across the student's
// outstanding payments, oldest first. Failed result codes, unknown
// students and students without payments are silent no-ops; gateways
// retry on non-2xx and there is nothing for them to fix.
func (s *BillingService) ApplyExternalCallback(studentCode string, resultCode int, amount int64) error {
	if resultCode != 0 || amount <= 0 {
		return nil
	}

	student, err := s.studentRepo.GetByCode(studentCode)
	if err != nil {
		if _, ok := apperr.As(err); ok {
			log.Printf("gateway callback: unknown student %q, ignoring", studentCode)
			return nil
		}
		return err
	}

	payments, err := s.paymentRepo.ListByStudent(student.ID)
	if err != nil {
		return err
	}
	if len(payments) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		incoming := amount
		for i := range payments {
			if incoming <= 0 {
				break
			}
			payment := &payments[i]
			if payment.RemainingAmount <= 0 {
				continue
			}
			portion := payment.RemainingAmount
			if incoming < portion {
				portion = incoming
			}
			if err := s.settle(repo, payment, MethodGateway, portion); err != nil {
				return err
			}
			incoming -= portion
		}
		if incoming > 0 {
			log.Printf("gateway callback: student %s overpaid by %d, excess not allocated", studentCode, incoming)
		}
		return nil
	})
}

// settle appends one transaction and persists the recomputed totals.
func (s *BillingService) settle(repo *repository.PaymentRepository, payment *models.Payment, method string, amount int64) error {
	tr := models.PaymentTransaction{
		PaymentID: payment.ID,
		Method:    method,
		Amount:    amount,
		PaidAt:    s.now(),
	}
	if err := repo.AddTransaction(&tr); err != nil {
		return err
	}
	payment.Transactions = append(payment.Transactions, tr)
	payment.Recalculate()
	return repo.UpdateDerived(payment)
}

// List returns a page of payments
func (s *BillingService) List(offset, limit int) ([]models.Payment, int64, error) {
	return s.paymentRepo.List(offset, limit)
}

// GetByID returns one payment with items and history
func (s *BillingService) GetByID(id uint) (*models.Payment, error) {
	return s.paymentRepo.GetByID(id)
}

// ListByStudentCode returns a student's payments oldest first
func (s *BillingService) ListByStudentCode(code string) ([]models.Payment, error) {
	student, err := s.studentRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByStudent(student.ID)
}
