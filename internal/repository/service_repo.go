package repository

import (
	"errors"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

// GetByID retrieves an active service by ID
func (r *ServiceRepository) GetByID(id uint) (*models.Service, error) {
	var svc models.Service
	err := r.db.Where("id = ? AND is_active = ?", id, true).First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// GetByIDs retrieves a set of active services; missing ids surface as a
// service_not_found failure.
func (r *ServiceRepository) GetByIDs(ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}
	var services []models.Service
	err := r.db.Where("id IN ? AND is_active = ?", ids, true).Find(&services).Error
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, apperr.ErrServiceNotFound
	}
	return services, nil
}

// List retrieves a page of active services plus the total count
func (r *ServiceRepository) List(offset, limit int) ([]models.Service, int64, error) {
	var services []models.Service
	var total int64

	if err := r.db.Model(&models.Service{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("is_active = ?", true).
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&services).Error
	return services, total, err
}

// Create inserts a new service
func (r *ServiceRepository) Create(svc *models.Service) error {
	return r.db.Create(svc).Error
}

// Update persists changes to a service
func (r *ServiceRepository) Update(svc *models.Service) error {
	return r.db.Save(svc).Error
}

// SoftDelete deactivates a service
func (r *ServiceRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Service{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}
