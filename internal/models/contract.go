package models

import "time"

// Contract status values. EXPIRED and CANCELLED are terminal.
const (
	ContractPending             = "PENDING"
	ContractConfirmed           = "CONFIRMED"
	ContractPendingCancellation = "PENDING_CANCELLATION"
	ContractCancelled           = "CANCELLED"
	ContractExpired             = "EXPIRED"
)

// Duration units for ContractType.
const (
	UnitYear  = "YEAR"
	UnitMonth = "MONTH"
	UnitDay   = "DAY"
)

// ContractType is immutable reference data used to compute an end date
// from a start date.
type ContractType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Duration  int       `gorm:"not null" json:"duration"`
	Unit      string    `gorm:"size:10;not null" json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for ContractType model
func (ContractType) TableName() string {
	return "contract_types"
}

// EndDateFrom computes the contract end date for a given start date.
func (t *ContractType) EndDateFrom(start time.Time) time.Time {
	switch t.Unit {
	case UnitYear:
		return start.AddDate(t.Duration, 0, 0)
	case UnitMonth:
		return start.AddDate(0, t.Duration, 0)
	default:
		return start.AddDate(0, 0, t.Duration)
	}
}

// Contract represents a student's room-tenancy agreement. The student
// identity and room price are snapshotted at creation time.
type Contract struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ReferenceCode string `gorm:"size:64;uniqueIndex" json:"reference_code"`

	StudentID   uint   `gorm:"not null;index" json:"student_id"`
	StudentCode string `gorm:"size:20;not null;index" json:"student_code"`
	FullName    string `gorm:"size:100" json:"full_name"`
	Email       string `gorm:"size:100" json:"email"`
	Phone       string `gorm:"size:20" json:"phone"`

	RoomID    uint  `gorm:"not null;index" json:"room_id"`
	RoomPrice int64 `gorm:"not null" json:"room_price"`

	ContractTypeID uint   `gorm:"not null" json:"contract_type_id"`
	Status         string `gorm:"size:30;not null;index" json:"status"`
	AdminID        *uint  `json:"admin_id,omitempty"`

	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `gorm:"index" json:"end_date,omitempty"`
	ApprovedDate *time.Time `json:"approved_date,omitempty"`
	CheckInDate  *time.Time `json:"check_in_date,omitempty"`
	CheckOutDate *time.Time `json:"check_out_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Room         Room              `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	ContractType ContractType      `gorm:"foreignKey:ContractTypeID" json:"contract_type,omitempty"`
	Services     []ContractService `gorm:"foreignKey:ContractID" json:"services"`
}

// TableName specifies the table name for Contract model
func (Contract) TableName() string {
	return "contracts"
}

// IsExpirable reports whether the contract should flip to EXPIRED at now.
func (c *Contract) IsExpirable(now time.Time) bool {
	if c.Status != ContractConfirmed && c.Status != ContractPendingCancellation {
		return false
	}
	return c.EndDate != nil && c.EndDate.Before(now)
}

// ContractService is a service attached to a contract. AttachedAt feeds
// proration in billing.
type ContractService struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ContractID uint      `gorm:"not null;uniqueIndex:idx_contract_service" json:"contract_id"`
	ServiceID  uint      `gorm:"not null;uniqueIndex:idx_contract_service" json:"service_id"`
	AttachedAt time.Time `gorm:"not null" json:"attached_at"`

	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// TableName specifies the table name for ContractService model
func (ContractService) TableName() string {
	return "contract_services"
}
