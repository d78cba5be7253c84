package models

import "time"

// Service represents a recurring room service (e.g. cleaning) billed monthly
type Service struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price     int64     `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for Service model
func (Service) TableName() string {
	return "services"
}
