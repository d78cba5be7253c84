package repository

import (
	"errors"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepo(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: tx}
}

// GetByID retrieves a payment with items and settlement history
func (r *PaymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.
		Preload("Items").
		Preload("Transactions").
		First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// List retrieves a page of payments plus the total count
func (r *PaymentRepository) List(offset, limit int) ([]models.Payment, int64, error) {
	var payments []models.Payment
	var total int64

	if err := r.db.Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Items").
		Preload("Transactions").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&payments).Error
	return payments, total, err
}

// ListByStudent retrieves a student's payments oldest first, which is the
// allocation order for gateway callbacks.
func (r *PaymentRepository) ListByStudent(studentID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("student_id = ?", studentID).
		Preload("Items").
		Preload("Transactions").
		Order("created_at ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

// ExistsForContractCycle reports whether the contract was already billed in
// the given YYYY-MM cycle.
func (r *PaymentRepository) ExistsForContractCycle(contractID uint, cycle string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Payment{}).
		Where("contract_id = ? AND cycle = ?", contractID, cycle).
		Count(&count).Error
	return count > 0, err
}

// FindForContractCycle retrieves the contract's payment for a cycle, or nil
func (r *PaymentRepository) FindForContractCycle(contractID uint, cycle string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("contract_id = ? AND cycle = ?", contractID, cycle).
		Preload("Items").
		Preload("Transactions").
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// Create inserts a new payment with its items
func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// AddItem appends a service charge to an existing payment
func (r *PaymentRepository) AddItem(item *models.PaymentItem) error {
	return r.db.Create(item).Error
}

// AddTransaction appends a settlement entry
func (r *PaymentRepository) AddTransaction(tr *models.PaymentTransaction) error {
	return r.db.Create(tr).Error
}

// UpdateDerived persists the recomputed derived fields of a payment
func (r *PaymentRepository) UpdateDerived(p *models.Payment) error {
	return r.db.Model(&models.Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"total_amount":     p.TotalAmount,
			"paid_amount":      p.PaidAmount,
			"remaining_amount": p.RemainingAmount,
			"status":           p.Status,
		}).Error
}
