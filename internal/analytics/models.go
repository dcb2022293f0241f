package analytics

import "time"

// Overview summarizes the whole property portfolio for the admin
// dashboard.
type Overview struct {
	TotalBookings     int64   `json:"total_bookings"`
	ActiveBookings    int64   `json:"active_bookings"`
	CancelledBookings int64   `json:"cancelled_bookings"`
	NoShowBookings    int64   `json:"no_show_bookings"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalRefunded     float64 `json:"total_refunded"`
	NoShowRate        float64 `json:"no_show_rate"`
	CancellationRate  float64 `json:"cancellation_rate"`
}

// HotelOccupancy reports how full one hotel is right now.
type HotelOccupancy struct {
	HotelID       uint    `json:"hotel_id"`
	HotelName     string  `json:"hotel_name"`
	TotalRooms    int64   `json:"total_rooms"`
	OccupiedRooms int64   `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// DailyBookingStats is one day's booking and revenue volume.
type DailyBookingStats struct {
	Date     time.Time `json:"date"`
	Bookings int64     `json:"bookings"`
	Revenue  float64   `json:"revenue"`
}

// PromotionUsage aggregates consumed uses and discount spend per
// promotion.
type PromotionUsage struct {
	PromotionID   uint    `json:"promotion_id"`
	Code          string  `json:"code"`
	Uses          int64   `json:"uses"`
	TotalDiscount float64 `json:"total_discount"`
	IsActive      bool    `json:"is_active"`
}

// BookingExportRow is one line of the admin CSV export.
type BookingExportRow struct {
	BookingID     uint
	UserID        uint
	RoomNumber    string
	CheckInDate   time.Time
	CheckOutDate  time.Time
	Status        string
	Origin        string
	TotalPrice    float64
	RefundAmount  float64
	PaymentStatus string
	CreatedAt     time.Time
}
