package repository

import (
	"errors"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepo(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *RoomRepository) WithTx(tx *gorm.DB) *RoomRepository {
	return &RoomRepository{db: tx}
}

// GetByID retrieves an active room by ID with block and type preloaded
func (r *RoomRepository) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("id = ? AND is_active = ?", id, true).
		Preload("RoomBlock").
		Preload("RoomType").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// GetBySlug retrieves an active room by its slug
func (r *RoomRepository) GetBySlug(slug string) (*models.Room, error) {
	var room models.Room
	err := r.db.Where("slug = ? AND is_active = ?", slug, true).
		Preload("RoomBlock").
		Preload("RoomType").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// List retrieves a page of active rooms plus the total count
func (r *RoomRepository) List(offset, limit int) ([]models.Room, int64, error) {
	var rooms []models.Room
	var total int64

	q := r.db.Model(&models.Room{}).Where("is_active = ?", true)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Where("is_active = ?", true).
		Preload("RoomBlock").
		Preload("RoomType").
		Order("floor ASC, name ASC").
		Offset(offset).Limit(limit).
		Find(&rooms).Error
	return rooms, total, err
}

// Create inserts a new room
func (r *RoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

// Update persists changes to a room
func (r *RoomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

// SoftDelete deactivates a room
func (r *RoomRepository) SoftDelete(id uint) error {
	return r.db.Model(&models.Room{}).
		Where("id = ?", id).
		Update("is_active", false).Error
}

// IncrementOccupancy registers one more student on the room. The capacity
// bound lives in the WHERE clause so concurrent confirms cannot race past it.
func (r *RoomRepository) IncrementOccupancy(id uint) error {
	res := r.db.Model(&models.Room{}).
		Where("id = ? AND registered_students < maximum_capacity", id).
		UpdateColumn("registered_students", gorm.Expr("registered_students + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var room models.Room
		if err := r.db.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrRoomNotFound
			}
			return err
		}
		return apperr.ErrCapacityExceeded
	}
	return nil
}

// DecrementOccupancy releases one student from the room. Hitting the zero
// bound means a prior invariant breach, surfaced as an internal error.
func (r *RoomRepository) DecrementOccupancy(id uint) error {
	res := r.db.Model(&models.Room{}).
		Where("id = ? AND registered_students > 0", id).
		UpdateColumn("registered_students", gorm.Expr("registered_students - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var room models.Room
		if err := r.db.First(&room, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.ErrRoomNotFound
			}
			return err
		}
		return apperr.ErrOccupancyUnderflow
	}
	return nil
}
