package bookings

import "time"

type BookingResponse struct {
	ID           uint      `json:"id"`
	RoomID       uint      `json:"room_id"`
	RoomNumber   string    `json:"room_number,omitempty"`
	CheckInDate  time.Time `json:"check_in_date"`
	CheckOutDate time.Time `json:"check_out_date"`
	Nights       int       `json:"nights"`

	BasePrice      float64 `json:"base_price"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalPrice     float64 `json:"total_price"`

	Status string `json:"status"`
	Origin string `json:"origin"`

	PromotionID *uint `json:"promotion_id,omitempty"`
	PackageID   *uint `json:"package_id,omitempty"`

	PaymentMethod string     `json:"payment_method,omitempty"`
	PaymentStatus string     `json:"payment_status"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`

	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	RefundAmount       float64    `json:"refund_amount,omitempty"`

	QRToken      string     `json:"qr_token"`
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ScanAction describes what a scan did to the booking.
type ScanAction string

const (
	ScanActionCheckedIn         ScanAction = "CHECKED_IN"
	ScanActionCheckedOut        ScanAction = "CHECKED_OUT"
	ScanActionAlreadyCheckedOut ScanAction = "ALREADY_CHECKED_OUT"
)

type ScanResponse struct {
	Action  ScanAction       `json:"action"`
	Message string           `json:"message"`
	Booking *BookingResponse `json:"booking"`
}

func toBookingResponse(b *Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		RoomID:             b.RoomID,
		CheckInDate:        b.CheckInDate,
		CheckOutDate:       b.CheckOutDate,
		Nights:             b.Nights,
		BasePrice:          b.BasePrice,
		DiscountAmount:     b.DiscountAmount,
		TotalPrice:         b.TotalPrice,
		Status:             string(b.Status),
		Origin:             string(b.Origin),
		PromotionID:        b.PromotionID,
		PackageID:          b.PackageID,
		PaymentMethod:      b.PaymentMethod,
		PaymentStatus:      string(b.PaymentStatus),
		TransactionID:      b.TransactionID,
		PaymentDate:        b.PaymentDate,
		CancelledAt:        b.CancelledAt,
		CancellationReason: b.CancellationReason,
		RefundAmount:       b.RefundAmount,
		QRToken:            b.QRToken,
		CheckInTime:        b.CheckInTime,
		CheckOutTime:       b.CheckOutTime,
		CreatedAt:          b.CreatedAt,
	}
	if b.Room != nil {
		resp.RoomNumber = b.Room.RoomNumber
	}
	return resp
}
