package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	GetOverview(ctx context.Context) (*Overview, error)
	GetHotelOccupancy(ctx context.Context, onDate time.Time) ([]HotelOccupancy, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error)
	GetPromotionUsage(ctx context.Context) ([]PromotionUsage, error)
	GetBookingExportRows(ctx context.Context, from, to time.Time) ([]BookingExportRow, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOverview(ctx context.Context) (*Overview, error) {
	var overview Overview

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE status IN ('PENDING', 'CONFIRMED', 'CHECKED_IN')) AS active_bookings,
			COUNT(*) FILTER (WHERE status = 'CANCELLED') AS cancelled_bookings,
			COUNT(*) FILTER (WHERE status = 'NO_SHOW') AS no_show_bookings,
			COALESCE(SUM(payment_amount) FILTER (WHERE payment_status IN ('COMPLETED', 'REFUNDED')), 0) AS total_revenue,
			COALESCE(SUM(refund_amount), 0) AS total_refunded
		FROM bookings
	`).Scan(&overview).Error
	if err != nil {
		return nil, err
	}

	if overview.TotalBookings > 0 {
		overview.NoShowRate = float64(overview.NoShowBookings) / float64(overview.TotalBookings)
		overview.CancellationRate = float64(overview.CancelledBookings) / float64(overview.TotalBookings)
	}
	return &overview, nil
}

func (r *repository) GetHotelOccupancy(ctx context.Context, onDate time.Time) ([]HotelOccupancy, error) {
	var occupancy []HotelOccupancy

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			h.id AS hotel_id,
			h.name AS hotel_name,
			COUNT(DISTINCT rm.id) AS total_rooms,
			COUNT(DISTINCT b.room_id) AS occupied_rooms
		FROM hotels h
		JOIN room_types rt ON rt.hotel_id = h.id AND rt.deleted_at IS NULL
		JOIN rooms rm ON rm.room_type_id = rt.id AND rm.deleted_at IS NULL
		LEFT JOIN bookings b ON b.room_id = rm.id
			AND b.status IN ('CONFIRMED', 'CHECKED_IN')
			AND b.check_in_date <= ?
			AND b.check_out_date > ?
		WHERE h.deleted_at IS NULL
		GROUP BY h.id, h.name
		ORDER BY h.name
	`, onDate, onDate).Scan(&occupancy).Error
	if err != nil {
		return nil, err
	}

	for i := range occupancy {
		if occupancy[i].TotalRooms > 0 {
			occupancy[i].OccupancyRate = float64(occupancy[i].OccupiedRooms) / float64(occupancy[i].TotalRooms)
		}
	}
	return occupancy, nil
}

func (r *repository) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error) {
	var stats []DailyBookingStats
	since := time.Now().UTC().AddDate(0, 0, -days)

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			DATE(created_at) AS date,
			COUNT(*) AS bookings,
			COALESCE(SUM(payment_amount) FILTER (WHERE payment_status IN ('COMPLETED', 'REFUNDED')), 0) AS revenue
		FROM bookings
		WHERE created_at >= ?
		GROUP BY DATE(created_at)
		ORDER BY date
	`, since).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *repository) GetPromotionUsage(ctx context.Context) ([]PromotionUsage, error) {
	var usage []PromotionUsage

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id AS promotion_id,
			p.code AS code,
			p.is_active AS is_active,
			COUNT(b.id) AS uses,
			COALESCE(SUM(b.discount_amount), 0) AS total_discount
		FROM promotions p
		LEFT JOIN bookings b ON b.promotion_id = p.id AND b.promo_used_at IS NOT NULL
		WHERE p.deleted_at IS NULL
		GROUP BY p.id, p.code, p.is_active
		ORDER BY uses DESC
	`).Scan(&usage).Error
	if err != nil {
		return nil, err
	}
	return usage, nil
}

func (r *repository) GetBookingExportRows(ctx context.Context, from, to time.Time) ([]BookingExportRow, error) {
	var rows []BookingExportRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			b.id AS booking_id,
			b.user_id,
			rm.room_number,
			b.check_in_date,
			b.check_out_date,
			b.status,
			b.origin,
			b.total_price,
			b.refund_amount,
			b.payment_status,
			b.created_at
		FROM bookings b
		JOIN rooms rm ON rm.id = b.room_id
		WHERE b.created_at >= ? AND b.created_at < ?
		ORDER BY b.created_at
	`, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
