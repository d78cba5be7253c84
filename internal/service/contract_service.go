package service

import (
	"fmt"
	"log"
	"time"

	"dorm-backend/internal/models"
	"dorm-backend/internal/repository"
	"dorm-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContractService owns the tenancy lifecycle: creation, confirmation,
// cancellation, check-in/out and service attachment. It is the only writer
// of room occupancy and of student housing references.
type ContractService struct {
	db               *gorm.DB
	contractRepo     *repository.ContractRepository
	roomRepo         *repository.RoomRepository
	studentRepo      *repository.StudentRepository
	serviceRepo      *repository.ServiceRepository
	contractTypeRepo *repository.ContractTypeRepository
	paymentRepo      *repository.PaymentRepository
	auditRepo        *repository.AuditRepository

	now func() time.Time
}

func NewContractService(
	db *gorm.DB,
	contractRepo *repository.ContractRepository,
	roomRepo *repository.RoomRepository,
	studentRepo *repository.StudentRepository,
	serviceRepo *repository.ServiceRepository,
	contractTypeRepo *repository.ContractTypeRepository,
	paymentRepo *repository.PaymentRepository,
	auditRepo *repository.AuditRepository,
) *ContractService {
	return &ContractService{
		db:               db,
		contractRepo:     contractRepo,
		roomRepo:         roomRepo,
		studentRepo:      studentRepo,
		serviceRepo:      serviceRepo,
		contractTypeRepo: contractTypeRepo,
		paymentRepo:      paymentRepo,
		auditRepo:        auditRepo,
		now:              time.Now,
	}
}

// SetClock overrides the time source (used by tests and the worker)
func (s *ContractService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateContractRequest is the registration payload for a new contract
type CreateContractRequest struct {
	StudentCode    string `json:"student_code" binding:"required"`
	RoomID         uint   `json:"room_id" binding:"required"`
	ContractTypeID uint   `json:"contract_type_id" binding:"required"`
	ServiceIDs     []uint `json:"service_ids"`
}

// Create validates a registration request and persists a PENDING contract.
// No room or occupancy state changes until confirmation.
func (s *ContractService) Create(req CreateContractRequest) (*models.Contract, error) {
	now := s.now()

	room, err := s.roomRepo.GetByID(req.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.HasVacancy() {
		return nil, apperr.ErrCapacityExceeded
	}

	services, err := s.serviceRepo.GetByIDs(req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	student, err := s.studentRepo.GetByCode(req.StudentCode)
	if err != nil {
		return nil, err
	}
	if student.RoomID != nil {
		return nil, apperr.ErrStudentHoused
	}

	contractType, err := s.contractTypeRepo.GetByID(req.ContractTypeID)
	if err != nil {
		return nil, err
	}

	// Tentative term starting today; confirmation recomputes from the first
	// of next month.
	tentativeEnd := contractType.EndDateFrom(now)
	if tentativeEnd.After(student.GraduationDate()) {
		return nil, apperr.ErrExceedsGraduation
	}

	latest, err := s.contractRepo.LatestByStudent(student.ID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		switch latest.Status {
		case models.ContractPending:
			return nil, apperr.ErrContractPending
		case models.ContractConfirmed, models.ContractPendingCancellation:
			if latest.EndDate == nil || !latest.EndDate.Before(now) {
				return nil, apperr.ErrContractActive
			}
		}
	}

	contract := &models.Contract{
		ReferenceCode:  uuid.New().String(),
		StudentID:      student.ID,
		StudentCode:    student.Code,
		FullName:       student.FullName,
		Email:          student.Email,
		Phone:          student.Phone,
		RoomID:         room.ID,
		RoomPrice:      room.Price,
		ContractTypeID: contractType.ID,
		Status:         models.ContractPending,
	}
	for _, svc := range services {
		contract.Services = append(contract.Services, models.ContractService{
			ServiceID:  svc.ID,
			AttachedAt: now,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.contractRepo.WithTx(tx).Create(contract); err != nil {
			return err
		}
		return s.studentRepo.WithTx(tx).SetHousing(student.ID, nil, &contract.ID)
	})
	if err != nil {
		return nil, err
	}

	return s.contractRepo.GetByID(contract.ID)
}

// Confirm moves a PENDING contract to CONFIRMED: assigns the room, stamps
// the term and releases nothing on failure. The occupancy increment is a
// conditional update, so two concurrent confirms cannot overfill a room.
func (s *ContractService) Confirm(id uint, adminID uint) (*models.Contract, error) {
	now := s.now()

	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractPending || contract.StartDate != nil || contract.EndDate != nil {
		return nil, apperr.ErrAlreadyConfirmed
	}

	student, err := s.studentRepo.GetByID(contract.StudentID)
	if err != nil {
		return nil, err
	}
	room, err := s.roomRepo.GetByID(contract.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.HasVacancy() {
		return nil, apperr.ErrCapacityExceeded
	}
	if student.RoomID != nil {
		return nil, apperr.ErrStudentHoused
	}

	contractType, err := s.contractTypeRepo.GetByID(contract.ContractTypeID)
	if err != nil {
		return nil, err
	}

	// Term runs from the first day of next calendar month.
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	end := contractType.EndDateFrom(start)
	if end.After(student.GraduationDate()) {
		return nil, apperr.ErrExceedsGraduation
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.roomRepo.WithTx(tx).IncrementOccupancy(room.ID); err != nil {
			return err
		}
		if err := s.studentRepo.WithTx(tx).SetHousing(student.ID, &room.ID, &contract.ID); err != nil {
			return err
		}
		if err := s.contractRepo.WithTx(tx).StampServiceAttachments(contract.ID, now); err != nil {
			return err
		}
		return s.contractRepo.WithTx(tx).UpdateFields(contract.ID, map[string]interface{}{
			"status":        models.ContractConfirmed,
			"start_date":    start,
			"end_date":      end,
			"approved_date": now,
			"admin_id":      adminID,
		})
	})
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "contract_confirm",
		fmt.Sprintf("Confirmed contract %d for student %s (room %d)", contract.ID, contract.StudentCode, room.ID))

	return s.contractRepo.GetByID(contract.ID)
}

// RequestCancel moves CONFIRMED to PENDING_CANCELLATION
func (s *ContractService) RequestCancel(id uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractConfirmed {
		return nil, apperr.ErrInvalidTransition
	}
	if err := s.contractRepo.UpdateFields(id, map[string]interface{}{
		"status": models.ContractPendingCancellation,
	}); err != nil {
		return nil, err
	}
	return s.contractRepo.GetByID(id)
}

// UndoCancelRequest moves PENDING_CANCELLATION back to CONFIRMED
func (s *ContractService) UndoCancelRequest(id uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractPendingCancellation {
		return nil, apperr.ErrInvalidTransition
	}
	if err := s.contractRepo.UpdateFields(id, map[string]interface{}{
		"status": models.ContractConfirmed,
	}); err != nil {
		return nil, err
	}
	return s.contractRepo.GetByID(id)
}

// Cancel terminates an active contract, releasing the room and the student
func (s *ContractService) Cancel(id uint, adminID uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.release(contract, nil); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "contract_cancel",
		fmt.Sprintf("Cancelled contract %d for student %s", contract.ID, contract.StudentCode))

	return s.contractRepo.GetByID(id)
}

// CheckIn stamps the student's move-in date on an active contract
func (s *ContractService) CheckIn(id uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractConfirmed && contract.Status != models.ContractPendingCancellation {
		return nil, apperr.ErrInvalidTransition
	}
	now := s.now()
	if err := s.contractRepo.UpdateFields(id, map[string]interface{}{
		"check_in_date": now,
	}); err != nil {
		return nil, err
	}
	return s.contractRepo.GetByID(id)
}

// CheckOut performs the same release as Cancel and stamps the move-out date
func (s *ContractService) CheckOut(id uint, adminID uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.CheckInDate == nil {
		return nil, apperr.ErrNotCheckedIn
	}
	checkOut := s.now()
	if err := s.release(contract, &checkOut); err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "contract_checkout",
		fmt.Sprintf("Checked out contract %d for student %s", contract.ID, contract.StudentCode))

	return s.contractRepo.GetByID(id)
}

// release is the shared cancel/checkout path: clears the student's housing
// references, decrements occupancy and moves the contract to CANCELLED.
func (s *ContractService) release(contract *models.Contract, checkOutDate *time.Time) error {
	if contract.Status != models.ContractConfirmed && contract.Status != models.ContractPendingCancellation {
		return apperr.ErrInvalidTransition
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.studentRepo.WithTx(tx).SetHousing(contract.StudentID, nil, nil); err != nil {
			return err
		}
		if err := s.roomRepo.WithTx(tx).DecrementOccupancy(contract.RoomID); err != nil {
			return err
		}
		fields := map[string]interface{}{
			"status": models.ContractCancelled,
		}
		if checkOutDate != nil {
			fields["check_out_date"] = *checkOutDate
		}
		return s.contractRepo.WithTx(tx).UpdateFields(contract.ID, fields)
	})
}

// Remove deletes a contract that never left PENDING
func (s *ContractService) Remove(id uint) error {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return err
	}
	if contract.Status != models.ContractPending {
		return apperr.ErrCannotDelete
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.studentRepo.WithTx(tx).SetHousing(contract.StudentID, nil, nil); err != nil {
			return err
		}
		return s.contractRepo.WithTx(tx).Delete(id)
	})
}

// AddService attaches a recurring service to a contract. Idempotent: a
// second attach of the same service is a no-op. If the current month's
// payment already exists, the new charge is appended to it as well; that
// sync is best-effort and never rolls back the contract attachment.
func (s *ContractService) AddService(contractID, serviceID uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(contractID)
	if err != nil {
		return nil, err
	}
	svc, err := s.serviceRepo.GetByID(serviceID)
	if err != nil {
		return nil, err
	}

	for _, attached := range contract.Services {
		if attached.ServiceID == serviceID {
			return contract, nil
		}
	}

	now := s.now()
	if err := s.contractRepo.AttachService(&models.ContractService{
		ContractID: contractID,
		ServiceID:  serviceID,
		AttachedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := s.syncServiceToOpenPayment(contract, svc, now); err != nil {
		log.Printf("contract %d: failed to sync service %d onto current payment: %v", contractID, serviceID, err)
	}

	return s.contractRepo.GetByID(contractID)
}

// syncServiceToOpenPayment keeps an in-flight monthly bill consistent with
// a contract change. A missing payment for the cycle is the normal fallback
// path, not an error.
func (s *ContractService) syncServiceToOpenPayment(contract *models.Contract, svc *models.Service, now time.Time) error {
	cycle := now.Format("2006-01")
	payment, err := s.paymentRepo.FindForContractCycle(contract.ID, cycle)
	if err != nil {
		return err
	}
	if payment == nil {
		return nil
	}
	for _, item := range payment.Items {
		if item.ServiceID == svc.ID {
			return nil
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.paymentRepo.WithTx(tx)
		item := models.PaymentItem{
			PaymentID:  payment.ID,
			ServiceID:  svc.ID,
			Name:       svc.Name,
			Price:      svc.Price,
			AttachedAt: now,
		}
		if err := repo.AddItem(&item); err != nil {
			return err
		}
		payment.Items = append(payment.Items, item)
		payment.Recalculate()
		return repo.UpdateDerived(payment)
	})
}

// RemoveService detaches a service from a contract
func (s *ContractService) RemoveService(contractID, serviceID uint) (*models.Contract, error) {
	if _, err := s.contractRepo.GetByID(contractID); err != nil {
		return nil, err
	}
	removed, err := s.contractRepo.DetachService(contractID, serviceID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, apperr.ErrServiceNotAttached
	}
	return s.contractRepo.GetByID(contractID)
}

// List reconciles expired contracts, then returns a page
func (s *ContractService) List(offset, limit int) ([]models.Contract, int64, error) {
	if _, err := s.ReconcileExpired(); err != nil {
		return nil, 0, err
	}
	return s.contractRepo.List(offset, limit)
}

// GetByID applies the single-record lazy expiry rule before returning
func (s *ContractService) GetByID(id uint) (*models.Contract, error) {
	contract, err := s.contractRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract.IsExpirable(s.now()) {
		if err := s.contractRepo.UpdateFields(id, map[string]interface{}{
			"status": models.ContractExpired,
		}); err != nil {
			return nil, err
		}
		contract.Status = models.ContractExpired
	}
	return contract, nil
}

// ReconcileExpired flips every overdue active contract to EXPIRED.
// Idempotent; safe to call from the worker or before any listing.
func (s *ContractService) ReconcileExpired() (int64, error) {
	return s.contractRepo.MarkExpired(s.now())
}
