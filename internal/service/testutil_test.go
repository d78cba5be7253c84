package service

import (
	"testing"
	"time"

	"dorm-backend/internal/models"
	"dorm-backend/internal/repository"
	"dorm-backend/pkg/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	students  *repository.StudentRepository
	rooms     *repository.RoomRepository
	payments  *repository.PaymentRepository
	contracts *ContractService
	billing   *BillingService
}

func newTestEnv(t *testing.T) *testEnv {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.AuditLog{},
		&models.Student{},
		&models.RoomBlock{},
		&models.RoomType{},
		&models.Room{},
		&models.Service{},
		&models.ContractType{},
		&models.Contract{},
		&models.ContractService{},
		&models.Payment{},
		&models.PaymentItem{},
		&models.PaymentTransaction{},
	)
	require.NoError(t, err)

	auditRepo := repository.NewAuditRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	serviceRepo := repository.NewServiceRepo(db)
	contractTypeRepo := repository.NewContractTypeRepo(db)
	contractRepo := repository.NewContractRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	return &testEnv{
		db:        db,
		students:  studentRepo,
		rooms:     roomRepo,
		payments:  paymentRepo,
		contracts: NewContractService(db, contractRepo, roomRepo, studentRepo, serviceRepo, contractTypeRepo, paymentRepo, auditRepo),
		billing:   NewBillingService(db, paymentRepo, contractRepo, studentRepo, auditRepo),
	}
}

// at pins both service clocks to a fixed instant.
func (e *testEnv) at(year int, month time.Month, day int) time.Time {
	now := time.Date(year, month, day, 10, 0, 0, 0, time.UTC)
	e.contracts.SetClock(func() time.Time { return now })
	e.billing.SetClock(func() time.Time { return now })
	return now
}

func (e *testEnv) seedStudent(t *testing.T, code string, enrollmentYear int) *models.Student {
	student := &models.Student{
		Code:           code,
		FullName:       "Student " + code,
		Email:          code + "@example.edu",
		EnrollmentYear: enrollmentYear,
	}
	require.NoError(t, e.students.Create(student))
	return student
}

func (e *testEnv) seedRoom(t *testing.T, name string, floor int, price int64, capacity int) *models.Room {
	room := &models.Room{
		Name:            name,
		Floor:           floor,
		Slug:            utils.RoomSlug(name, floor),
		Price:           price,
		MaximumCapacity: capacity,
		IsActive:        true,
	}
	require.NoError(t, e.rooms.Create(room))
	return room
}

func (e *testEnv) seedContractType(t *testing.T, title string, duration int, unit string) *models.ContractType {
	ct := &models.ContractType{Title: title, Duration: duration, Unit: unit}
	require.NoError(t, e.db.Create(ct).Error)
	return ct
}

func (e *testEnv) seedService(t *testing.T, name string, price int64) *models.Service {
	svc := &models.Service{Name: name, Price: price, IsActive: true}
	require.NoError(t, e.db.Create(svc).Error)
	return svc
}

// seedConfirmedContract runs the normal create + confirm path and returns
// the resulting contract.
func (e *testEnv) seedConfirmedContract(t *testing.T, student *models.Student, room *models.Room, ct *models.ContractType, serviceIDs ...uint) *models.Contract {
	contract, err := e.contracts.Create(CreateContractRequest{
		StudentCode:    student.Code,
		RoomID:         room.ID,
		ContractTypeID: ct.ID,
		ServiceIDs:     serviceIDs,
	})
	require.NoError(t, err)

	confirmed, err := e.contracts.Confirm(contract.ID, 1)
	require.NoError(t, err)
	return confirmed
}

func (e *testEnv) roomOccupancy(t *testing.T, id uint) int {
	var room models.Room
	require.NoError(t, e.db.First(&room, id).Error)
	return room.RegisteredStudents
}
