package models

import "time"

// Payment status values, derived from paid vs total amounts.
const (
	PaymentUnpaid        = "UNPAID"
	PaymentPartiallyPaid = "PARTIALLY_PAID"
	PaymentPaid          = "PAID"
)

// Payment is one monthly bill for a contract: room price plus attached
// services, snapshotted at generation time. TotalAmount, PaidAmount,
// RemainingAmount and Status are derived; Recalculate is the only writer.
type Payment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StudentID   uint   `gorm:"not null;index" json:"student_id"`
	StudentCode string `gorm:"size:20;not null;index" json:"student_code"`
	StudentName string `gorm:"size:100" json:"student_name"`
	ContractID  uint   `gorm:"not null;uniqueIndex:idx_payment_contract_cycle" json:"contract_id"`

	// Billing cycle in YYYY-MM form; one payment per contract per cycle.
	Cycle string `gorm:"size:7;not null;uniqueIndex:idx_payment_contract_cycle;index" json:"cycle"`

	RoomName  string `gorm:"size:50" json:"room_name"`
	RoomFloor int    `json:"room_floor"`
	RoomType  string `gorm:"size:50" json:"room_type"`
	RoomBlock string `gorm:"size:50" json:"room_block"`
	RoomPrice int64  `gorm:"not null" json:"room_price"`

	ContractTypeTitle string `gorm:"size:100" json:"contract_type_title"`

	TotalAmount     int64  `gorm:"not null" json:"total_amount"`
	PaidAmount      int64  `gorm:"not null;default:0" json:"paid_amount"`
	RemainingAmount int64  `gorm:"not null" json:"remaining_amount"`
	Status          string `gorm:"size:20;not null;index" json:"status"`

	AdminID *uint  `json:"admin_id,omitempty"`
	Note    string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Items        []PaymentItem        `gorm:"foreignKey:PaymentID" json:"items"`
	Transactions []PaymentTransaction `gorm:"foreignKey:PaymentID" json:"transactions"`
}

// TableName specifies the table name for Payment model
func (Payment) TableName() string {
	return "payments"
}

// Recalculate rebuilds every derived field from the room price, the service
// items and the settlement history. Must be called before persisting any
// mutation to those inputs.
func (p *Payment) Recalculate() {
	total := p.RoomPrice
	for _, item := range p.Items {
		total += item.Price
	}
	paid := int64(0)
	for _, tr := range p.Transactions {
		paid += tr.Amount
	}

	p.TotalAmount = total
	p.PaidAmount = paid
	p.RemainingAmount = total - paid

	switch {
	case paid == 0:
		p.Status = PaymentUnpaid
	case paid < total:
		p.Status = PaymentPartiallyPaid
	default:
		p.Status = PaymentPaid
	}
}

// PaymentItem is a service charge snapshotted onto a payment.
type PaymentItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PaymentID  uint      `gorm:"not null;index" json:"payment_id"`
	ServiceID  uint      `gorm:"not null" json:"service_id"`
	Name       string    `gorm:"size:100" json:"name"`
	Price      int64     `gorm:"not null" json:"price"`
	AttachedAt time.Time `json:"attached_at"`
}

// TableName specifies the table name for PaymentItem model
func (PaymentItem) TableName() string {
	return "payment_items"
}

// PaymentTransaction is one append-only settlement entry.
type PaymentTransaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PaymentID uint      `gorm:"not null;index" json:"payment_id"`
	Method    string    `gorm:"size:20;not null" json:"method"`
	Amount    int64     `gorm:"not null" json:"amount"`
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`
}

// TableName specifies the table name for PaymentTransaction model
func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}
