package models

import "time"

// Student represents a resident or applicant. RoomID and ContractID are
// mutated only by the contract lifecycle, never by student CRUD.
type Student struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Code           string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	FullName       string    `gorm:"size:100;not null" json:"full_name"`
	Email          string    `gorm:"size:100" json:"email"`
	Phone          string    `gorm:"size:20" json:"phone"`
	EnrollmentYear int       `gorm:"not null" json:"enrollment_year"`
	RoomID         *uint     `gorm:"index" json:"room_id,omitempty"`
	ContractID     *uint     `gorm:"index" json:"contract_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for Student model
func (Student) TableName() string {
	return "students"
}

// GraduationDate is the hard ceiling no contract end date may cross:
// December 31, four years after enrollment.
func (s *Student) GraduationDate() time.Time {
	return time.Date(s.EnrollmentYear+4, time.December, 31, 23, 59, 59, 0, time.UTC)
}
