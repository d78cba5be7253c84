package repository

import (
	"errors"
	"time"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

type ContractRepository struct {
	db *gorm.DB
}

func NewContractRepo(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *ContractRepository) WithTx(tx *gorm.DB) *ContractRepository {
	return &ContractRepository{db: tx}
}

// GetByID retrieves a contract with its room, type and attached services
func (r *ContractRepository) GetByID(id uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.
		Preload("Room").
		Preload("ContractType").
		Preload("Services.Service").
		First(&contract, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// LatestByStudent retrieves the student's most recently created contract,
// or nil if they have none.
func (r *ContractRepository) LatestByStudent(studentID uint) (*models.Contract, error) {
	var contract models.Contract
	err := r.db.Where("student_id = ?", studentID).
		Order("created_at DESC, id DESC").
		First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &contract, nil
}

// List retrieves a page of contracts plus the total count
func (r *ContractRepository) List(offset, limit int) ([]models.Contract, int64, error) {
	var contracts []models.Contract
	var total int64

	if err := r.db.Model(&models.Contract{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.
		Preload("Room").
		Preload("ContractType").
		Preload("Services.Service").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&contracts).Error
	return contracts, total, err
}

// ActiveInWindow retrieves confirmed contracts whose term contains now,
// with everything billing needs preloaded.
func (r *ContractRepository) ActiveInWindow(now time.Time) ([]models.Contract, error) {
	var contracts []models.Contract
	err := r.db.
		Where("status = ? AND start_date IS NOT NULL AND start_date <= ? AND end_date IS NOT NULL AND end_date >= ?",
			models.ContractConfirmed, now, now).
		Preload("Room.RoomBlock").
		Preload("Room.RoomType").
		Preload("ContractType").
		Preload("Services.Service").
		Order("id ASC").
		Find(&contracts).Error
	return contracts, err
}

// MarkExpired bulk-flips confirmed and pending-cancellation contracts whose
// end date has passed. Idempotent; returns the number of rows flipped.
func (r *ContractRepository) MarkExpired(now time.Time) (int64, error) {
	res := r.db.Model(&models.Contract{}).
		Where("status IN ? AND end_date IS NOT NULL AND end_date < ?",
			[]string{models.ContractConfirmed, models.ContractPendingCancellation}, now).
		Update("status", models.ContractExpired)
	return res.RowsAffected, res.Error
}

// Create inserts a new contract with its attached services
func (r *ContractRepository) Create(contract *models.Contract) error {
	return r.db.Create(contract).Error
}

// UpdateFields applies a partial update to a contract row
func (r *ContractRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return r.db.Model(&models.Contract{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes a contract and its service attachments
func (r *ContractRepository) Delete(id uint) error {
	if err := r.db.Where("contract_id = ?", id).Delete(&models.ContractService{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&models.Contract{}, id).Error
}

// AttachService links a service to a contract
func (r *ContractRepository) AttachService(cs *models.ContractService) error {
	return r.db.Create(cs).Error
}

// DetachService removes a service attachment; reports whether a row existed
func (r *ContractRepository) DetachService(contractID, serviceID uint) (bool, error) {
	res := r.db.Where("contract_id = ? AND service_id = ?", contractID, serviceID).
		Delete(&models.ContractService{})
	return res.RowsAffected > 0, res.Error
}

// StampServiceAttachments resets every attachment timestamp on a contract.
// Called on confirmation so proration starts at move-in, not request time.
func (r *ContractRepository) StampServiceAttachments(contractID uint, at time.Time) error {
	return r.db.Model(&models.ContractService{}).
		Where("contract_id = ?", contractID).
		Update("attached_at", at).Error
}
