package hotels

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNoRoomAvailable  = errors.New("no room of this type is available for the requested dates")
)

// bookingTerminalStatuses are booking states that no longer block a room.
// Kept as raw values so this package does not depend on the bookings package.
var bookingTerminalStatuses = []string{"CANCELLED", "CHECKED_OUT", "NO_SHOW"}

type Repository interface {
	// Hotels
	CreateHotel(ctx context.Context, hotel *Hotel) error
	GetHotelByID(ctx context.Context, id uint) (*Hotel, error)
	GetAllHotels(ctx context.Context, city string) ([]Hotel, error)
	UpdateHotel(ctx context.Context, id uint, updates map[string]interface{}) (*Hotel, error)
	DeleteHotel(ctx context.Context, id uint) error

	// Room types
	CreateRoomType(ctx context.Context, rt *RoomType) error
	GetRoomTypeByID(ctx context.Context, id uint) (*RoomType, error)
	GetRoomTypesByHotel(ctx context.Context, hotelID uint) ([]RoomType, error)
	GetAllRoomTypes(ctx context.Context) ([]RoomType, error)
	UpdateRoomType(ctx context.Context, id uint, updates map[string]interface{}) (*RoomType, error)
	DeleteRoomType(ctx context.Context, id uint) error

	// Rooms
	CreateRoom(ctx context.Context, room *Room) error
	GetRoomByID(ctx context.Context, id uint) (*Room, error)
	GetRoomsByType(ctx context.Context, roomTypeID uint) ([]Room, error)
	UpdateRoom(ctx context.Context, id uint, updates map[string]interface{}) (*Room, error)
	DeleteRoom(ctx context.Context, id uint) error

	// Availability
	FindAvailableRoom(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (*Room, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateHotel(ctx context.Context, hotel *Hotel) error {
	return r.db.WithContext(ctx).Create(hotel).Error
}

func (r *repository) GetHotelByID(ctx context.Context, id uint) (*Hotel, error) {
	var hotel Hotel
	err := r.db.WithContext(ctx).Preload("RoomTypes").Where("id = ?", id).First(&hotel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) GetAllHotels(ctx context.Context, city string) ([]Hotel, error) {
	var hotels []Hotel
	query := r.db.WithContext(ctx).Order("name asc")
	if city != "" {
		query = query.Where("city = ?", city)
	}
	if err := query.Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}

func (r *repository) UpdateHotel(ctx context.Context, id uint, updates map[string]interface{}) (*Hotel, error) {
	var hotel Hotel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&hotel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&hotel).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &hotel, nil
}

func (r *repository) DeleteHotel(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Hotel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrHotelNotFound
	}
	return nil
}

func (r *repository) CreateRoomType(ctx context.Context, rt *RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *repository) GetRoomTypeByID(ctx context.Context, id uint) (*RoomType, error) {
	var rt RoomType
	err := r.db.WithContext(ctx).Preload("Hotel").Where("id = ?", id).First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *repository) GetRoomTypesByHotel(ctx context.Context, hotelID uint) ([]RoomType, error) {
	var roomTypes []RoomType
	err := r.db.WithContext(ctx).
		Where("hotel_id = ?", hotelID).
		Order("base_price asc").
		Find(&roomTypes).Error
	if err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (r *repository) GetAllRoomTypes(ctx context.Context) ([]RoomType, error) {
	var roomTypes []RoomType
	err := r.db.WithContext(ctx).Preload("Hotel").Order("base_price asc").Find(&roomTypes).Error
	if err != nil {
		return nil, err
	}
	return roomTypes, nil
}

func (r *repository) UpdateRoomType(ctx context.Context, id uint, updates map[string]interface{}) (*RoomType, error) {
	var rt RoomType
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&rt).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *repository) DeleteRoomType(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&RoomType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoomTypeNotFound
	}
	return nil
}

func (r *repository) CreateRoom(ctx context.Context, room *Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *repository) GetRoomByID(ctx context.Context, id uint) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).Preload("RoomType").Where("id = ?", id).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *repository) GetRoomsByType(ctx context.Context, roomTypeID uint) ([]Room, error) {
	var rooms []Room
	err := r.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("room_number asc").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *repository) UpdateRoom(ctx context.Context, id uint, updates map[string]interface{}) (*Room, error) {
	var room Room
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&room).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *repository) DeleteRoom(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// FindAvailableRoom returns the lowest-numbered room of the given type with
// no overlapping active booking in [checkIn, checkOut). A room's housekeeping
// status must be AVAILABLE, but the authoritative check is the booking
// overlap predicate: existing.check_in < checkOut AND existing.check_out >
// checkIn, ignoring terminal bookings.
func (r *repository) FindAvailableRoom(ctx context.Context, roomTypeID uint, checkIn, checkOut time.Time) (*Room, error) {
	var room Room
	err := r.db.WithContext(ctx).
		Where("room_type_id = ? AND status = ?", roomTypeID, RoomStatusAvailable).
		Where(`NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = rooms.id
			  AND b.status NOT IN ?
			  AND b.check_in_date < ?
			  AND b.check_out_date > ?
		)`, bookingTerminalStatuses, checkOut, checkIn).
		Order("room_number asc").
		First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRoomAvailable
		}
		return nil, err
	}
	return &room, nil
}
