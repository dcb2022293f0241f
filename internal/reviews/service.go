package reviews

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrBookingNotReviewable = errors.New("cancelled or no-show bookings cannot be reviewed")
)

// BookingInfo is the slice of booking state this package needs. Declared
// here so reviews does not depend on the bookings package.
type BookingInfo struct {
	ID      uint
	UserID  uint
	HotelID uint
	Status  string
}

// BookingReader resolves booking ownership at review time.
type BookingReader interface {
	GetBookingInfo(ctx context.Context, bookingID uint) (*BookingInfo, error)
}

type Service interface {
	SetBookingReader(reader BookingReader)

	Create(ctx context.Context, userID uint, req CreateReviewRequest) (*Review, error)
	GetByBooking(ctx context.Context, bookingID uint) (*Review, error)
	ListByHotel(ctx context.Context, hotelID uint) ([]Review, error)
	ListByUser(ctx context.Context, userID uint) ([]Review, error)
	Delete(ctx context.Context, id uint) error
	ExistsForBooking(ctx context.Context, bookingID uint) (bool, error)
}

type service struct {
	repo          Repository
	bookingReader BookingReader
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetBookingReader(reader BookingReader) {
	s.bookingReader = reader
}

func (s *service) Create(ctx context.Context, userID uint, req CreateReviewRequest) (*Review, error) {
	if s.bookingReader == nil {
		return nil, fmt.Errorf("booking reader not configured")
	}

	booking, err := s.bookingReader.GetBookingInfo(ctx, req.BookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		// Reported as not-found so review probes cannot confirm other
		// users' booking ids.
		return nil, ErrBookingNotFound
	}
	if booking.Status == "CANCELLED" || booking.Status == "NO_SHOW" {
		return nil, ErrBookingNotReviewable
	}

	exists, err := s.repo.ExistsForBooking(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	review := &Review{
		BookingID: req.BookingID,
		UserID:    userID,
		HotelID:   booking.HotelID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

func (s *service) GetByBooking(ctx context.Context, bookingID uint) (*Review, error) {
	return s.repo.GetByBookingID(ctx, bookingID)
}

func (s *service) ListByHotel(ctx context.Context, hotelID uint) ([]Review, error) {
	return s.repo.GetByHotel(ctx, hotelID)
}

func (s *service) ListByUser(ctx context.Context, userID uint) ([]Review, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ExistsForBooking(ctx context.Context, bookingID uint) (bool, error) {
	return s.repo.ExistsForBooking(ctx, bookingID)
}
