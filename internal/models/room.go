package models

import (
	"time"

	"gorm.io/datatypes"
)

// RoomBlock represents a building block rooms belong to
type RoomBlock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for RoomBlock model
func (RoomBlock) TableName() string {
	return "room_blocks"
}

// RoomType represents a room category (e.g. standard, service)
type RoomType struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
}

// TableName specifies the table name for RoomType model
func (RoomType) TableName() string {
	return "room_types"
}

// Room represents a dormitory room. RegisteredStudents is derived state,
// mutated only through the occupancy methods on RoomRepository.
type Room struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Name               string         `gorm:"size:50;not null;uniqueIndex:idx_rooms_name_floor" json:"name"`
	Floor              int            `gorm:"not null;uniqueIndex:idx_rooms_name_floor" json:"floor"`
	Slug               string         `gorm:"size:120;uniqueIndex" json:"slug"`
	Description        string         `gorm:"type:text" json:"description,omitempty"`
	RoomBlockID        *uint          `gorm:"index" json:"room_block_id,omitempty"`
	RoomTypeID         *uint          `gorm:"index" json:"room_type_id,omitempty"`
	Price              int64          `gorm:"not null;default:0" json:"price"`
	MaximumCapacity    int            `gorm:"not null;default:4" json:"maximum_capacity"`
	RegisteredStudents int            `gorm:"not null;default:0" json:"registered_students"`
	Devices            datatypes.JSON `json:"devices,omitempty"`
	Images             datatypes.JSON `json:"images,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`

	// Relationships
	RoomBlock *RoomBlock `gorm:"foreignKey:RoomBlockID" json:"room_block,omitempty"`
	RoomType  *RoomType  `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}

// TableName specifies the table name for Room model
func (Room) TableName() string {
	return "rooms"
}

// HasVacancy reports whether another student can still register.
func (r *Room) HasVacancy() bool {
	return r.RegisteredStudents < r.MaximumCapacity
}
