package bookings

import (
	"context"
	"errors"
	"time"

	"roomly/internal/hotels"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	// CreateWithRoomLock resolves an available room of the requested type
	// and inserts the booking in one transaction, holding a row lock on
	// the chosen room across the final overlap check.
	CreateWithRoomLock(ctx context.Context, booking *Booking, roomTypeID uint) error

	GetByID(ctx context.Context, id uint) (*Booking, error)
	GetByQRToken(ctx context.Context, token string) (*Booking, error)
	GetByUser(ctx context.Context, userID uint) ([]Booking, error)
	GetAll(ctx context.Context) ([]Booking, error)
	Save(ctx context.Context, booking *Booking) error

	// Sweep passes; each is idempotent.
	MarkNoShows(ctx context.Context, cutoff time.Time) (int64, error)
	MarkOverdueCheckouts(ctx context.Context, now time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateWithRoomLock(ctx context.Context, booking *Booking, roomTypeID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&hotels.Room{})

		// Row locks are a no-op on sqlite, which serializes writers anyway.
		if tx.Dialector.Name() == "postgres" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var room hotels.Room
		err := query.
			Where("room_type_id = ? AND status = ?", roomTypeID, hotels.RoomStatusAvailable).
			Where(`NOT EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.room_id = rooms.id
				  AND b.status NOT IN ?
				  AND b.check_in_date < ?
				  AND b.check_out_date > ?
			)`, TerminalStatuses(), booking.CheckOutDate, booking.CheckInDate).
			Order("room_number asc").
			First(&room).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return hotels.ErrNoRoomAvailable
			}
			return err
		}

		booking.RoomID = room.ID
		if err := tx.Create(booking).Error; err != nil {
			return err
		}

		booking.Room = &room
		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Room.RoomType").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByQRToken(ctx context.Context, token string) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("qr_token = ?", token).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uint) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Order("created_at desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) Save(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// MarkNoShows flips unscanned bookings whose check-in date passed the
// one-day grace period. Both Pending (never paid) and Confirmed (paid but
// never scanned) bookings qualify.
func (r *repository) MarkNoShows(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Booking{}).
		Where("status IN ? AND check_in_date < ? AND check_in_time IS NULL",
			[]Status{StatusPending, StatusConfirmed}, cutoff).
		Update("status", StatusNoShow)
	return result.RowsAffected, result.Error
}

// MarkOverdueCheckouts closes checked-in stays whose check-out date is
// already past.
func (r *repository) MarkOverdueCheckouts(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Booking{}).
		Where("status = ? AND check_out_date < ?", StatusCheckedIn, now).
		Updates(map[string]interface{}{
			"status":         StatusCheckedOut,
			"check_out_time": now,
		})
	return result.RowsAffected, result.Error
}
