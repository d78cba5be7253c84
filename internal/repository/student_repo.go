package repository

import (
	"errors"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"

	"gorm.io/gorm"
)

type StudentRepository struct {
	db *gorm.DB
}

func NewStudentRepo(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction
func (r *StudentRepository) WithTx(tx *gorm.DB) *StudentRepository {
	return &StudentRepository{db: tx}
}

// GetByID retrieves a student by primary key
func (r *StudentRepository) GetByID(id uint) (*models.Student, error) {
	var student models.Student
	err := r.db.First(&student, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// GetByCode retrieves a student by student code
func (r *StudentRepository) GetByCode(code string) (*models.Student, error) {
	var student models.Student
	err := r.db.Where("code = ?", code).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrStudentNotFound
		}
		return nil, err
	}
	return &student, nil
}

// List retrieves a page of students plus the total count
func (r *StudentRepository) List(offset, limit int) ([]models.Student, int64, error) {
	var students []models.Student
	var total int64

	if err := r.db.Model(&models.Student{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("code ASC").Offset(offset).Limit(limit).Find(&students).Error
	return students, total, err
}

// Create inserts a new student
func (r *StudentRepository) Create(student *models.Student) error {
	return r.db.Create(student).Error
}

// Update persists changes to a student
func (r *StudentRepository) Update(student *models.Student) error {
	return r.db.Save(student).Error
}

// SetHousing stamps the room and contract a student is assigned to.
// Nil values clear the assignment.
func (r *StudentRepository) SetHousing(studentID uint, roomID, contractID *uint) error {
	return r.db.Model(&models.Student{}).
		Where("id = ?", studentID).
		Updates(map[string]interface{}{
			"room_id":     roomID,
			"contract_id": contractID,
		}).Error
}
