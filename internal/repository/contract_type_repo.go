package repository

import (
	"errors"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

type ContractTypeRepository struct {
	db *gorm.DB
}

func NewContractTypeRepo(db *gorm.DB) *ContractTypeRepository {
	return &ContractTypeRepository{db: db}
}

// GetByID retrieves a contract type by ID
func (r *ContractTypeRepository) GetByID(id uint) (*models.ContractType, error) {
	var ct models.ContractType
	err := r.db.First(&ct, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrContractTypeNotFound
		}
		return nil, err
	}
	return &ct, nil
}

// List retrieves all contract types
func (r *ContractTypeRepository) List() ([]models.ContractType, error) {
	var types []models.ContractType
	err := r.db.Order("duration ASC").Find(&types).Error
	return types, err
}

// Create inserts a new contract type
func (r *ContractTypeRepository) Create(ct *models.ContractType) error {
	return r.db.Create(ct).Error
}
