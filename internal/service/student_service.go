package service

import (
	"dorm-backend/internal/models"
	"dorm-backend/internal/repository"
	"dorm-backend/pkg/apperr"
)

// StudentService handles student directory CRUD. Housing references
// (room_id, contract_id) are owned by the contract lifecycle.
type StudentService struct {
	studentRepo *repository.StudentRepository
}

func NewStudentService(studentRepo *repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// Create inserts a new student
func (s *StudentService) Create(student *models.Student) (*models.Student, error) {
	if existing, err := s.studentRepo.GetByCode(student.Code); err == nil && existing != nil {
		return nil, apperr.ErrDuplicateStudent
	}
	if err := s.studentRepo.Create(student); err != nil {
		if isDuplicateErr(err) {
			return nil, apperr.ErrDuplicateStudent
		}
		return nil, err
	}
	return student, nil
}

// Update persists directory fields, preserving lifecycle-owned references
func (s *StudentService) Update(student *models.Student) (*models.Student, error) {
	existing, err := s.studentRepo.GetByID(student.ID)
	if err != nil {
		return nil, err
	}
	student.Code = existing.Code
	student.RoomID = existing.RoomID
	student.ContractID = existing.ContractID

	if err := s.studentRepo.Update(student); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(student.ID)
}

// GetByID returns one student
func (s *StudentService) GetByID(id uint) (*models.Student, error) {
	return s.studentRepo.GetByID(id)
}

// GetByCode returns one student by student code
func (s *StudentService) GetByCode(code string) (*models.Student, error) {
	return s.studentRepo.GetByCode(code)
}

// List returns a page of students
func (s *StudentService) List(offset, limit int) ([]models.Student, int64, error) {
	return s.studentRepo.List(offset, limit)
}
