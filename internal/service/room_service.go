package service

import (
	"fmt"
	"strings"

	"dorm-backend/internal/models"
	"dorm-backend/internal/repository"
	"dorm-backend/pkg/apperr"
	"dorm-backend/pkg/utils"
)

// RoomService handles room administration. Occupancy counters are not
// writable here; only the contract lifecycle mutates them.
type RoomService struct {
	roomRepo  *repository.RoomRepository
	refRepo   *repository.ReferenceRepository
	auditRepo *repository.AuditRepository
}

func NewRoomService(
	roomRepo *repository.RoomRepository,
	refRepo *repository.ReferenceRepository,
	auditRepo *repository.AuditRepository,
) *RoomService {
	return &RoomService{
		roomRepo:  roomRepo,
		refRepo:   refRepo,
		auditRepo: auditRepo,
	}
}

// Create inserts a new room, deriving its slug from name + floor
func (s *RoomService) Create(room *models.Room, adminID uint) (*models.Room, error) {
	room.Slug = utils.RoomSlug(room.Name, room.Floor)
	room.RegisteredStudents = 0
	room.IsActive = true

	if err := s.roomRepo.Create(room); err != nil {
		if isDuplicateErr(err) {
			return nil, apperr.ErrDuplicateRoom
		}
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "room_create",
		fmt.Sprintf("Created room %s (floor %d)", room.Name, room.Floor))

	return s.roomRepo.GetByID(room.ID)
}

// Update persists admin-editable room fields
func (s *RoomService) Update(room *models.Room, adminID uint) (*models.Room, error) {
	existing, err := s.roomRepo.GetByID(room.ID)
	if err != nil {
		return nil, err
	}

	// Derived and lifecycle-owned fields are not caller-writable.
	room.RegisteredStudents = existing.RegisteredStudents
	room.IsActive = existing.IsActive
	room.Slug = utils.RoomSlug(room.Name, room.Floor)
	if room.MaximumCapacity < existing.RegisteredStudents {
		return nil, apperr.ErrCapacityExceeded.WithMessagef(
			"capacity %d is below the %d students already registered",
			room.MaximumCapacity, existing.RegisteredStudents)
	}

	if err := s.roomRepo.Update(room); err != nil {
		if isDuplicateErr(err) {
			return nil, apperr.ErrDuplicateRoom
		}
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "room_update",
		fmt.Sprintf("Updated room %s (ID %d)", room.Name, room.ID))

	return s.roomRepo.GetByID(room.ID)
}

// Delete soft deletes a room
func (s *RoomService) Delete(id uint, adminID uint) error {
	room, err := s.roomRepo.GetByID(id)
	if err != nil {
		return err
	}
	if room.RegisteredStudents > 0 {
		return apperr.ErrCapacityExceeded.WithMessagef(
			"room still has %d registered students", room.RegisteredStudents)
	}
	if err := s.roomRepo.SoftDelete(id); err != nil {
		return err
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "room_delete",
		fmt.Sprintf("Deleted room %s (ID %d)", room.Name, id))

	return nil
}

// GetByID returns one room
func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	return s.roomRepo.GetByID(id)
}

// List returns a page of rooms
func (s *RoomService) List(offset, limit int) ([]models.Room, int64, error) {
	return s.roomRepo.List(offset, limit)
}

// ListBlocks returns all room blocks
func (s *RoomService) ListBlocks() ([]models.RoomBlock, error) {
	return s.refRepo.ListBlocks()
}

// ListTypes returns all room types
func (s *RoomService) ListTypes() ([]models.RoomType, error) {
	return s.refRepo.ListTypes()
}

// CreateBlock inserts a room block
func (s *RoomService) CreateBlock(block *models.RoomBlock) error {
	block.IsActive = true
	return s.refRepo.CreateBlock(block)
}

// CreateType inserts a room type
func (s *RoomService) CreateType(roomType *models.RoomType) error {
	roomType.IsActive = true
	return s.refRepo.CreateType(roomType)
}

func isDuplicateErr(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique") || strings.Contains(msg, "constraint")
}
