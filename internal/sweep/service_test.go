package sweep_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"roomly/internal/bookings"
	"roomly/internal/hotels"
	"roomly/internal/promotions"
	"roomly/internal/sweep"
	"roomly/pkg/crypto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testKey = "0123456789abcdef0123456789abcdef"

func setupSweep(t *testing.T) (*gorm.DB, sweep.Service) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&hotels.Hotel{}, &hotels.RoomType{}, &hotels.Room{},
		&promotions.Promotion{}, &bookings.Booking{},
	))

	encryptor, err := crypto.NewEncryptor(testKey)
	require.NoError(t, err)
	promotionService := promotions.NewService(promotions.NewRepository(db), encryptor)

	return db, sweep.NewService(bookings.NewRepository(db), promotionService)
}

func seedBooking(t *testing.T, db *gorm.DB, status bookings.Status, checkInOffset, checkOutOffset int, mutate func(*bookings.Booking)) *bookings.Booking {
	t.Helper()
	now := time.Now().UTC()
	room := hotels.Room{RoomTypeID: 1, RoomNumber: fmt.Sprintf("r-%s", uuid.NewString()[:8]), Status: hotels.RoomStatusAvailable}
	require.NoError(t, db.Create(&room).Error)

	b := &bookings.Booking{
		UserID:       1,
		RoomID:       room.ID,
		CheckInDate:  now.AddDate(0, 0, checkInOffset),
		CheckOutDate: now.AddDate(0, 0, checkOutOffset),
		Nights:       checkOutOffset - checkInOffset,
		BasePrice:    100,
		TotalPrice:   100,
		Status:       status,
		Origin:       bookings.OriginRoom,
		QRToken:      uuid.NewString(),
	}
	if mutate != nil {
		mutate(b)
	}
	require.NoError(t, db.Create(b).Error)
	return b
}

func reload(t *testing.T, db *gorm.DB, id uint) *bookings.Booking {
	t.Helper()
	var b bookings.Booking
	require.NoError(t, db.First(&b, id).Error)
	return &b
}

func TestRunOnce_FlipsMissedStaysToNoShow(t *testing.T) {
	db, svc := setupSweep(t)

	missedConfirmed := seedBooking(t, db, bookings.StatusConfirmed, -1, 1, nil)
	missedPending := seedBooking(t, db, bookings.StatusPending, -2, -1, nil)
	arrivingToday := seedBooking(t, db, bookings.StatusConfirmed, 0, 2, nil)

	result, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.NoShows)

	assert.Equal(t, bookings.StatusNoShow, reload(t, db, missedConfirmed.ID).Status)
	assert.Equal(t, bookings.StatusNoShow, reload(t, db, missedPending.ID).Status)
	assert.Equal(t, bookings.StatusConfirmed, reload(t, db, arrivingToday.ID).Status)
}

func TestRunOnce_ScannedGuestsAreNotNoShows(t *testing.T) {
	db, svc := setupSweep(t)

	yesterday := time.Now().UTC().AddDate(0, 0, -1)
	scanned := seedBooking(t, db, bookings.StatusCheckedIn, -1, 1, func(b *bookings.Booking) {
		b.CheckInTime = &yesterday
	})

	result, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, result.NoShows)
	assert.Equal(t, bookings.StatusCheckedIn, reload(t, db, scanned.ID).Status)
}

func TestRunOnce_ClosesOverdueCheckouts(t *testing.T) {
	db, svc := setupSweep(t)

	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2)
	overdue := seedBooking(t, db, bookings.StatusCheckedIn, -2, -1, func(b *bookings.Booking) {
		b.CheckInTime = &twoDaysAgo
	})
	still := seedBooking(t, db, bookings.StatusCheckedIn, -1, 1, func(b *bookings.Booking) {
		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		b.CheckInTime = &yesterday
	})

	result, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.CheckOuts)

	closed := reload(t, db, overdue.ID)
	assert.Equal(t, bookings.StatusCheckedOut, closed.Status)
	assert.NotNil(t, closed.CheckOutTime)
	assert.Equal(t, bookings.StatusCheckedIn, reload(t, db, still.ID).Status)
}

func TestRunOnce_DeactivatesExpiredPromotions(t *testing.T) {
	db, svc := setupSweep(t)

	now := time.Now().UTC()
	expired := promotions.Promotion{
		Code: "OLD", DiscountType: promotions.DiscountPercentage, DiscountValue: 5,
		StartDate: now.AddDate(0, 0, -30), EndDate: now.AddDate(0, 0, -1),
		MaxUsesPerLimit: 1, IsActive: true,
	}
	current := promotions.Promotion{
		Code: "NEW", DiscountType: promotions.DiscountPercentage, DiscountValue: 5,
		StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 30),
		MaxUsesPerLimit: 1, IsActive: true,
	}
	require.NoError(t, db.Create(&expired).Error)
	require.NoError(t, db.Create(&current).Error)

	result, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.PromotionsDeactivated)

	var gotExpired promotions.Promotion
	require.NoError(t, db.First(&gotExpired, expired.ID).Error)
	assert.False(t, gotExpired.IsActive)
	var gotCurrent promotions.Promotion
	require.NoError(t, db.First(&gotCurrent, current.ID).Error)
	assert.True(t, gotCurrent.IsActive)
}

func TestRunOnce_SecondRunIsIdempotent(t *testing.T) {
	db, svc := setupSweep(t)

	seedBooking(t, db, bookings.StatusConfirmed, -1, 1, nil)
	twoDaysAgo := time.Now().UTC().AddDate(0, 0, -2)
	seedBooking(t, db, bookings.StatusCheckedIn, -2, -1, func(b *bookings.Booking) {
		b.CheckInTime = &twoDaysAgo
	})

	first, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.NoShows)
	assert.Equal(t, int64(1), first.CheckOuts)

	second, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.NoShows)
	assert.Zero(t, second.CheckOuts)
	assert.Zero(t, second.PromotionsDeactivated)
}
