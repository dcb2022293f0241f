// Package sweep advances booking statuses and deactivates stale
// promotions on a schedule, replacing ad hoc on-request sweeping with a
// dedicated background scheduler.
package sweep

import (
	"context"
	"time"

	"roomly/internal/bookings"
	"roomly/internal/promotions"
	"roomly/pkg/logger"
)

// Result reports what a sweep pass changed.
type Result struct {
	NoShows               int64 `json:"no_shows"`
	CheckOuts             int64 `json:"check_outs"`
	PromotionsDeactivated int64 `json:"promotions_deactivated"`
}

type Service interface {
	// RunOnce executes one full sweep pass. Every step is idempotent, so
	// overlapping or redundant runs are harmless.
	RunOnce(ctx context.Context) (*Result, error)
}

type service struct {
	bookingRepo      bookings.Repository
	promotionService promotions.Service
	logger           *logger.Logger
}

func NewService(bookingRepo bookings.Repository, promotionService promotions.Service) Service {
	return &service{
		bookingRepo:      bookingRepo,
		promotionService: promotionService,
		logger:           logger.GetDefault(),
	}
}

func (s *service) RunOnce(ctx context.Context) (*Result, error) {
	now := time.Now().UTC()
	result := &Result{}

	// Bookings never scanned by the start of today missed their stay.
	// A check-in date of yesterday flips; today's does not.
	today := now.Truncate(24 * time.Hour)
	noShows, err := s.bookingRepo.MarkNoShows(ctx, today)
	if err != nil {
		return nil, err
	}
	result.NoShows = noShows

	checkOuts, err := s.bookingRepo.MarkOverdueCheckouts(ctx, now)
	if err != nil {
		return nil, err
	}
	result.CheckOuts = checkOuts

	deactivated, err := s.promotionService.DeactivateStale(ctx)
	if err != nil {
		return nil, err
	}
	result.PromotionsDeactivated = deactivated

	s.logger.LogSweepCompleted(ctx, result.NoShows, result.CheckOuts, result.PromotionsDeactivated)
	return result, nil
}
