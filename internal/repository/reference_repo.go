package repository

import (
	"dorm-backend/internal/models"

	"gorm.io/gorm"
)

// ReferenceRepository serves the room block / room type reference data used
// by room CRUD and payment snapshots.
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepo(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

// ListBlocks retrieves all active room blocks
func (r *ReferenceRepository) ListBlocks() ([]models.RoomBlock, error) {
	var blocks []models.RoomBlock
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&blocks).Error
	return blocks, err
}

// CreateBlock inserts a new room block
func (r *ReferenceRepository) CreateBlock(block *models.RoomBlock) error {
	return r.db.Create(block).Error
}

// ListTypes retrieves all active room types
func (r *ReferenceRepository) ListTypes() ([]models.RoomType, error) {
	var types []models.RoomType
	err := r.db.Where("is_active = ?", true).Order("name ASC").Find(&types).Error
	return types, err
}

// CreateType inserts a new room type
func (r *ReferenceRepository) CreateType(roomType *models.RoomType) error {
	return r.db.Create(roomType).Error
}
