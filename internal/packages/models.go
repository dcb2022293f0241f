package packages

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ItemKind discriminates what a package item bundles. Exactly one of
// RoomTypeID or ServiceID is set, matching the kind.
type ItemKind string

const (
	ItemKindRoom    ItemKind = "ROOM"
	ItemKindService ItemKind = "SERVICE"
)

var ErrMalformedItem = errors.New("package item must reference exactly one room type or service matching its kind")

// HotelService is a bookable extra bundled into packages (breakfast,
// airport transfer, spa access).
type HotelService struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	Description string  `json:"description" gorm:"size:500"`
	Price       float64 `json:"price" gorm:"not null;check:price >= 0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Package is a fixed-price bundle of room nights and services. A booking
// made from a package is priced at Price regardless of room rates, and
// promotions are excluded.
type Package struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Name        string  `json:"name" gorm:"not null;size:255"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"not null;check:price > 0"`
	Nights      int     `json:"nights" gorm:"not null;default:1;check:nights > 0"`
	IsActive    bool    `json:"is_active" gorm:"not null;default:true"`

	Items []PackageItem `json:"items,omitempty" gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type PackageItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	PackageID uint     `json:"package_id" gorm:"index;not null"`
	Kind      ItemKind `json:"kind" gorm:"type:varchar(10);not null"`

	RoomTypeID *uint `json:"room_type_id,omitempty"`
	ServiceID  *uint `json:"service_id,omitempty"`

	Quantity int `json:"quantity" gorm:"not null;default:1;check:quantity > 0"`
}

func (HotelService) TableName() string { return "hotel_services" }
func (Package) TableName() string      { return "packages" }
func (PackageItem) TableName() string  { return "package_items" }

// RoomItem builds a room-nights item.
func RoomItem(roomTypeID uint, quantity int) PackageItem {
	return PackageItem{Kind: ItemKindRoom, RoomTypeID: &roomTypeID, Quantity: quantity}
}

// ServiceItem builds a bundled-service item.
func ServiceItem(serviceID uint, quantity int) PackageItem {
	return PackageItem{Kind: ItemKindService, ServiceID: &serviceID, Quantity: quantity}
}

// Validate enforces the tagged-union shape.
func (i PackageItem) Validate() error {
	switch i.Kind {
	case ItemKindRoom:
		if i.RoomTypeID == nil || i.ServiceID != nil {
			return ErrMalformedItem
		}
	case ItemKindService:
		if i.ServiceID == nil || i.RoomTypeID != nil {
			return ErrMalformedItem
		}
	default:
		return ErrMalformedItem
	}
	if i.Quantity <= 0 {
		return ErrMalformedItem
	}
	return nil
}
