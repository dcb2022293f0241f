package hotels

import (
	"time"

	"gorm.io/gorm"
)

// RoomStatus is the housekeeping status of a physical room. It is
// informational only: actual availability is derived from overlapping
// bookings, never from this flag alone.
type RoomStatus string

const (
	RoomStatusAvailable        RoomStatus = "AVAILABLE"
	RoomStatusOccupied         RoomStatus = "OCCUPIED"
	RoomStatusUnderMaintenance RoomStatus = "UNDER_MAINTENANCE"
	RoomStatusCleaning         RoomStatus = "CLEANING"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusUnderMaintenance, RoomStatusCleaning:
		return true
	}
	return false
}

type Hotel struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:255"`
	Description string `json:"description" gorm:"type:text"`
	Address     string `json:"address" gorm:"not null;size:500"`
	City        string `json:"city" gorm:"not null;size:100;index"`
	Phone       string `json:"phone" gorm:"size:30"`
	Email       string `json:"email" gorm:"size:255"`
	ImageURL    string `json:"image_url" gorm:"size:500"`

	RoomTypes []RoomType `json:"room_types,omitempty" gorm:"foreignKey:HotelID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type RoomType struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	HotelID     uint    `json:"hotel_id" gorm:"index;not null"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	Description string  `json:"description" gorm:"type:text"`
	BasePrice   float64 `json:"base_price" gorm:"not null;check:base_price >= 0"`
	Capacity    int     `json:"capacity" gorm:"not null;default:2;check:capacity > 0"`
	ImageURL    string  `json:"image_url" gorm:"size:500"`

	Hotel *Hotel `json:"hotel,omitempty" gorm:"foreignKey:HotelID"`
	Rooms []Room `json:"rooms,omitempty" gorm:"foreignKey:RoomTypeID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Room struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	RoomTypeID uint       `json:"room_type_id" gorm:"index;not null"`
	RoomNumber string     `json:"room_number" gorm:"not null;size:20;index"`
	Floor      int        `json:"floor"`
	Status     RoomStatus `json:"status" gorm:"type:varchar(20);not null;default:'AVAILABLE'"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Hotel) TableName() string    { return "hotels" }
func (RoomType) TableName() string { return "room_types" }
func (Room) TableName() string     { return "rooms" }
