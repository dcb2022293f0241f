package bookings

import (
	"time"

	"roomly/internal/hotels"
)

// Booking is the central entity of the system. Payment, cancellation and
// promotion-usage evidence are denormalized onto this row; evidence columns
// are what the promotion abuse limits count against.
type Booking struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"index;not null"`
	RoomID uint `json:"room_id" gorm:"index;not null"`

	CheckInDate  time.Time `json:"check_in_date" gorm:"not null;index"`
	CheckOutDate time.Time `json:"check_out_date" gorm:"not null"`
	Nights       int       `json:"nights" gorm:"not null"`

	BasePrice      float64 `json:"base_price" gorm:"not null"`
	DiscountAmount float64 `json:"discount_amount" gorm:"not null;default:0"`
	TotalPrice     float64 `json:"total_price" gorm:"not null"`

	Status Status     `json:"status" gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Origin OriginKind `json:"origin" gorm:"type:varchar(10);not null;default:'ROOM'"`

	PromotionID *uint `json:"promotion_id,omitempty" gorm:"index"`
	PackageID   *uint `json:"package_id,omitempty"`

	// Payment
	PaymentMethod string        `json:"payment_method,omitempty" gorm:"type:varchar(20)"`
	PaymentStatus PaymentStatus `json:"payment_status" gorm:"type:varchar(20);not null;default:'PENDING'"`
	TransactionID string        `json:"transaction_id,omitempty" gorm:"size:64"`
	PaymentAmount float64       `json:"payment_amount"`
	PaymentDate   *time.Time    `json:"payment_date,omitempty"`

	// Cancellation
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"size:500"`
	RefundAmount       float64    `json:"refund_amount"`

	// Promotion usage evidence
	PromoPhoneHash         string     `json:"-" gorm:"size:128;index"`
	PromoCardIdentifier    string     `json:"-" gorm:"size:32;index"`
	PromoDeviceFingerprint string     `json:"-" gorm:"size:128;index"`
	PromoIPAddress         string     `json:"-" gorm:"size:45"`
	PromoUsedAt            *time.Time `json:"-"`

	// Check-in / check-out
	QRToken      string     `json:"qr_token" gorm:"uniqueIndex;not null;size:36"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`

	Room *hotels.Room `json:"room,omitempty" gorm:"foreignKey:RoomID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// IsPaid reports whether payment completed for this booking.
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusCompleted
}
