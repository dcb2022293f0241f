package analytics

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"
)

type Service interface {
	GetOverview(ctx context.Context) (*Overview, error)
	GetHotelOccupancy(ctx context.Context) ([]HotelOccupancy, error)
	GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error)
	GetPromotionUsage(ctx context.Context) ([]PromotionUsage, error)
	ExportBookingsCSV(ctx context.Context, from, to time.Time) ([]byte, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetOverview(ctx context.Context) (*Overview, error) {
	return s.repo.GetOverview(ctx)
}

func (s *service) GetHotelOccupancy(ctx context.Context) ([]HotelOccupancy, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	return s.repo.GetHotelOccupancy(ctx, today)
}

func (s *service) GetDailyBookingStats(ctx context.Context, days int) ([]DailyBookingStats, error) {
	if days <= 0 || days > 365 {
		days = 30
	}
	return s.repo.GetDailyBookingStats(ctx, days)
}

func (s *service) GetPromotionUsage(ctx context.Context) ([]PromotionUsage, error) {
	return s.repo.GetPromotionUsage(ctx)
}

const exportDateLayout = "2006-01-02"

func (s *service) ExportBookingsCSV(ctx context.Context, from, to time.Time) ([]byte, error) {
	rows, err := s.repo.GetBookingExportRows(ctx, from, to)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{
		"booking_id", "user_id", "room_number", "check_in", "check_out",
		"status", "origin", "total_price", "refund_amount", "payment_status", "created_at",
	}
	if err := writer.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			strconv.FormatUint(uint64(row.BookingID), 10),
			strconv.FormatUint(uint64(row.UserID), 10),
			row.RoomNumber,
			row.CheckInDate.Format(exportDateLayout),
			row.CheckOutDate.Format(exportDateLayout),
			row.Status,
			row.Origin,
			strconv.FormatFloat(row.TotalPrice, 'f', 2, 64),
			strconv.FormatFloat(row.RefundAmount, 'f', 2, 64),
			row.PaymentStatus,
			row.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
