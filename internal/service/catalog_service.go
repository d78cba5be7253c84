package service

import (
	"dorm-backend/internal/models"
	"dorm-backend/internal/repository"
	"dorm-backend/pkg/apperr"
)

// CatalogService handles the recurring-service catalog and contract types,
// the reference data contracts and billing resolve against.
type CatalogService struct {
	serviceRepo      *repository.ServiceRepository
	contractTypeRepo *repository.ContractTypeRepository
}

func NewCatalogService(serviceRepo *repository.ServiceRepository, contractTypeRepo *repository.ContractTypeRepository) *CatalogService {
	return &CatalogService{
		serviceRepo:      serviceRepo,
		contractTypeRepo: contractTypeRepo,
	}
}

// CreateService inserts a catalog service
func (s *CatalogService) CreateService(svc *models.Service) (*models.Service, error) {
	svc.IsActive = true
	if err := s.serviceRepo.Create(svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// UpdateService persists changes to a catalog service
func (s *CatalogService) UpdateService(svc *models.Service) (*models.Service, error) {
	existing, err := s.serviceRepo.GetByID(svc.ID)
	if err != nil {
		return nil, err
	}
	svc.IsActive = existing.IsActive
	if err := s.serviceRepo.Update(svc); err != nil {
		return nil, err
	}
	return s.serviceRepo.GetByID(svc.ID)
}

// DeleteService deactivates a catalog service
func (s *CatalogService) DeleteService(id uint) error {
	if _, err := s.serviceRepo.GetByID(id); err != nil {
		return err
	}
	return s.serviceRepo.SoftDelete(id)
}

// GetService returns one catalog service
func (s *CatalogService) GetService(id uint) (*models.Service, error) {
	return s.serviceRepo.GetByID(id)
}

// ListServices returns a page of catalog services
func (s *CatalogService) ListServices(offset, limit int) ([]models.Service, int64, error) {
	return s.serviceRepo.List(offset, limit)
}

// CreateContractType inserts a contract type after validating its unit
func (s *CatalogService) CreateContractType(ct *models.ContractType) (*models.ContractType, error) {
	switch ct.Unit {
	case models.UnitYear, models.UnitMonth, models.UnitDay:
	default:
		return nil, apperr.ErrInvalidUnit
	}
	if err := s.contractTypeRepo.Create(ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// GetContractType returns one contract type
func (s *CatalogService) GetContractType(id uint) (*models.ContractType, error) {
	return s.contractTypeRepo.GetByID(id)
}

// ListContractTypes returns all contract types
func (s *CatalogService) ListContractTypes() ([]models.ContractType, error) {
	return s.contractTypeRepo.List()
}
