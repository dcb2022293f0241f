package hotels_test

import (
	"context"
	"testing"
	"time"

	"roomly/internal/bookings"
	"roomly/internal/hotels"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&hotels.Hotel{}, &hotels.RoomType{}, &hotels.Room{}, &bookings.Booking{},
	))
	return db
}

func seedRoomType(t *testing.T, db *gorm.DB, roomNumbers ...string) uint {
	t.Helper()
	hotel := hotels.Hotel{Name: "Test Hotel", Address: "1 Test St", City: "Testville"}
	require.NoError(t, db.Create(&hotel).Error)

	roomType := hotels.RoomType{HotelID: hotel.ID, Name: "Standard", BasePrice: 100, Capacity: 2}
	require.NoError(t, db.Create(&roomType).Error)

	for _, number := range roomNumbers {
		room := hotels.Room{RoomTypeID: roomType.ID, RoomNumber: number, Status: hotels.RoomStatusAvailable}
		require.NoError(t, db.Create(&room).Error)
	}
	return roomType.ID
}

func seedBooking(t *testing.T, db *gorm.DB, roomID uint, status bookings.Status, checkIn, checkOut time.Time) {
	t.Helper()
	booking := bookings.Booking{
		UserID:       1,
		RoomID:       roomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Nights:       int(checkOut.Sub(checkIn).Hours() / 24),
		BasePrice:    100,
		TotalPrice:   100,
		Status:       status,
		QRToken:      uuid.NewString(),
	}
	require.NoError(t, db.Create(&booking).Error)
}

func day(offset int) time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, offset)
}

func roomByNumber(t *testing.T, db *gorm.DB, number string) hotels.Room {
	t.Helper()
	var room hotels.Room
	require.NoError(t, db.Where("room_number = ?", number).First(&room).Error)
	return room
}

func TestFindAvailableRoom_PicksLowestRoomNumber(t *testing.T) {
	db := setupDB(t)
	roomTypeID := seedRoomType(t, db, "102", "101")
	repo := hotels.NewRepository(db)

	room, err := repo.FindAvailableRoom(context.Background(), roomTypeID, day(1), day(3))
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
}

func TestFindAvailableRoom_SkipsOverlappingBooking(t *testing.T) {
	db := setupDB(t)
	roomTypeID := seedRoomType(t, db, "101", "102")
	repo := hotels.NewRepository(db)

	seedBooking(t, db, roomByNumber(t, db, "101").ID, bookings.StatusConfirmed, day(1), day(4))

	room, err := repo.FindAvailableRoom(context.Background(), roomTypeID, day(2), day(3))
	require.NoError(t, err)
	assert.Equal(t, "102", room.RoomNumber)
}

func TestFindAvailableRoom_AllThreeOverlapCases(t *testing.T) {
	db := setupDB(t)
	roomTypeID := seedRoomType(t, db, "101")
	repo := hotels.NewRepository(db)

	seedBooking(t, db, roomByNumber(t, db, "101").ID, bookings.StatusConfirmed, day(2), day(5))

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"existing start inside requested range", day(1), day(3)},
		{"existing end inside requested range", day(4), day(6)},
		{"existing range contains requested range", day(3), day(4)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.FindAvailableRoom(context.Background(), roomTypeID, tc.checkIn, tc.checkOut)
			assert.ErrorIs(t, err, hotels.ErrNoRoomAvailable)
		})
	}
}

func TestFindAvailableRoom_BackToBackStaysDoNotConflict(t *testing.T) {
	db := setupDB(t)
	roomTypeID := seedRoomType(t, db, "101")
	repo := hotels.NewRepository(db)

	seedBooking(t, db, roomByNumber(t, db, "101").ID, bookings.StatusConfirmed, day(1), day(3))

	// New stay starting on the existing check-out day is allowed.
	room, err := repo.FindAvailableRoom(context.Background(), roomTypeID, day(3), day(5))
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
}

func TestFindAvailableRoom_TerminalBookingsDoNotBlock(t *testing.T) {
	db := setupDB(t)
	roomTypeID := seedRoomType(t, db, "101")
	repo := hotels.NewRepository(db)
	roomID := roomByNumber(t, db, "101").ID

	for _, status := range []bookings.Status{bookings.StatusCancelled, bookings.StatusCheckedOut, bookings.StatusNoShow} {
		seedBooking(t, db, roomID, status, day(1), day(4))
	}

	room, err := repo.FindAvailableRoom(context.Background(), roomTypeID, day(1), day(4))
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
}

func TestFindAvailableRoom_IgnoresRoomsUnderMaintenance(t *testing.T) {
	db := setupDB(t)
	roomTypeID := seedRoomType(t, db, "101")
	repo := hotels.NewRepository(db)

	require.NoError(t, db.Model(&hotels.Room{}).
		Where("room_number = ?", "101").
		Update("status", hotels.RoomStatusUnderMaintenance).Error)

	_, err := repo.FindAvailableRoom(context.Background(), roomTypeID, day(1), day(2))
	assert.ErrorIs(t, err, hotels.ErrNoRoomAvailable)
}
