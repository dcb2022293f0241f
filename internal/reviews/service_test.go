package reviews_test

import (
	"context"
	"testing"

	"roomly/internal/reviews"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubBookingReader struct {
	bookings map[uint]*reviews.BookingInfo
}

func (s *stubBookingReader) GetBookingInfo(_ context.Context, bookingID uint) (*reviews.BookingInfo, error) {
	if b, ok := s.bookings[bookingID]; ok {
		return b, nil
	}
	return nil, reviews.ErrBookingNotFound
}

func setupReviews(t *testing.T, reader reviews.BookingReader) reviews.Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&reviews.Review{}))

	svc := reviews.NewService(reviews.NewRepository(db))
	svc.SetBookingReader(reader)
	return svc
}

func TestCreate_StoresReviewForOwnBooking(t *testing.T) {
	svc := setupReviews(t, &stubBookingReader{bookings: map[uint]*reviews.BookingInfo{
		7: {ID: 7, UserID: 3, HotelID: 11, Status: "CHECKED_OUT"},
	}})

	review, err := svc.Create(context.Background(), 3, reviews.CreateReviewRequest{
		BookingID: 7, Rating: 5, Comment: "Spotless room",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), review.HotelID)
	assert.Equal(t, 5, review.Rating)

	exists, err := svc.ExistsForBooking(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreate_OneReviewPerBooking(t *testing.T) {
	svc := setupReviews(t, &stubBookingReader{bookings: map[uint]*reviews.BookingInfo{
		7: {ID: 7, UserID: 3, HotelID: 11, Status: "CONFIRMED"},
	}})

	_, err := svc.Create(context.Background(), 3, reviews.CreateReviewRequest{BookingID: 7, Rating: 4})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 3, reviews.CreateReviewRequest{BookingID: 7, Rating: 1})
	assert.ErrorIs(t, err, reviews.ErrAlreadyExists)
}

func TestCreate_OtherUsersBookingLooksMissing(t *testing.T) {
	svc := setupReviews(t, &stubBookingReader{bookings: map[uint]*reviews.BookingInfo{
		7: {ID: 7, UserID: 3, HotelID: 11, Status: "CONFIRMED"},
	}})

	_, err := svc.Create(context.Background(), 99, reviews.CreateReviewRequest{BookingID: 7, Rating: 4})
	assert.ErrorIs(t, err, reviews.ErrBookingNotFound)
}

func TestCreate_TerminalStatusesAreNotReviewable(t *testing.T) {
	svc := setupReviews(t, &stubBookingReader{bookings: map[uint]*reviews.BookingInfo{
		1: {ID: 1, UserID: 3, HotelID: 11, Status: "CANCELLED"},
		2: {ID: 2, UserID: 3, HotelID: 11, Status: "NO_SHOW"},
	}})

	for _, id := range []uint{1, 2} {
		_, err := svc.Create(context.Background(), 3, reviews.CreateReviewRequest{BookingID: id, Rating: 3})
		assert.ErrorIs(t, err, reviews.ErrBookingNotReviewable)
	}
}
