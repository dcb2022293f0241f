package hotels

import (
	"context"
	"errors"
	"fmt"
	"time"

	"roomly/internal/shared/config"
	"roomly/pkg/cache"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDateFormat  = errors.New("dates must be in YYYY-MM-DD format")
	ErrCheckOutNotAfterIn = errors.New("check-out date must be after check-in date")
	ErrCheckInPast        = errors.New("check-in date must not be in the past")
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	// Hotels
	CreateHotel(ctx context.Context, req CreateHotelRequest) (*Hotel, error)
	GetHotel(ctx context.Context, id uint) (*Hotel, error)
	ListHotels(ctx context.Context, city string) ([]Hotel, error)
	UpdateHotel(ctx context.Context, id uint, req UpdateHotelRequest) (*Hotel, error)
	DeleteHotel(ctx context.Context, id uint) error

	// Room types
	CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*RoomType, error)
	GetRoomType(ctx context.Context, id uint) (*RoomType, error)
	ListRoomTypes(ctx context.Context) ([]RoomType, error)
	ListRoomTypesByHotel(ctx context.Context, hotelID uint) ([]RoomType, error)
	UpdateRoomType(ctx context.Context, id uint, req UpdateRoomTypeRequest) (*RoomType, error)
	DeleteRoomType(ctx context.Context, id uint) error

	// Rooms
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error)
	GetRoom(ctx context.Context, id uint) (*Room, error)
	ListRoomsByType(ctx context.Context, roomTypeID uint) ([]Room, error)
	UpdateRoom(ctx context.Context, id uint, req UpdateRoomRequest) (*Room, error)
	DeleteRoom(ctx context.Context, id uint) error

	// Availability
	CheckAvailability(ctx context.Context, query AvailabilityQuery) (*Room, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	cfg          *config.Config
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{repo: repo, cfg: cfg}
}

// SetCacheService injects the cache service dependency
func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateHotel(ctx context.Context, req CreateHotelRequest) (*Hotel, error) {
	hotel := &Hotel{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Phone:       req.Phone,
		Email:       req.Email,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.CreateHotel(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to create hotel: %w", err)
	}
	return hotel, nil
}

func (s *service) GetHotel(ctx context.Context, id uint) (*Hotel, error) {
	return s.repo.GetHotelByID(ctx, id)
}

func (s *service) ListHotels(ctx context.Context, city string) ([]Hotel, error) {
	return s.repo.GetAllHotels(ctx, city)
}

func (s *service) UpdateHotel(ctx context.Context, id uint, req UpdateHotelRequest) (*Hotel, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	return s.repo.UpdateHotel(ctx, id, updates)
}

func (s *service) DeleteHotel(ctx context.Context, id uint) error {
	return s.repo.DeleteHotel(ctx, id)
}

func (s *service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*RoomType, error) {
	if _, err := s.repo.GetHotelByID(ctx, req.HotelID); err != nil {
		return nil, err
	}

	rt := &RoomType{
		HotelID:     req.HotelID,
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Capacity:    req.Capacity,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.CreateRoomType(ctx, rt); err != nil {
		return nil, fmt.Errorf("failed to create room type: %w", err)
	}
	s.invalidateCatalogCache(ctx, rt.ID)
	return rt, nil
}

func (s *service) GetRoomType(ctx context.Context, id uint) (*RoomType, error) {
	if s.cacheService != nil {
		var rt RoomType
		key := fmt.Sprintf("%s%d", cache.KeyRoomTypeDetail, id)
		err := s.cacheService.GetOrSet(ctx, key, s.cfg.Redis.CatalogTTL, func() (interface{}, error) {
			return s.repo.GetRoomTypeByID(ctx, id)
		}, &rt)
		if err == nil {
			return &rt, nil
		}
		if errors.Is(err, ErrRoomTypeNotFound) {
			return nil, err
		}
		// fall through on cache errors
	}
	return s.repo.GetRoomTypeByID(ctx, id)
}

func (s *service) ListRoomTypes(ctx context.Context) ([]RoomType, error) {
	if s.cacheService != nil {
		var roomTypes []RoomType
		err := s.cacheService.GetOrSet(ctx, cache.KeyRoomTypeList, s.cfg.Redis.CatalogTTL, func() (interface{}, error) {
			return s.repo.GetAllRoomTypes(ctx)
		}, &roomTypes)
		if err == nil {
			return roomTypes, nil
		}
	}
	return s.repo.GetAllRoomTypes(ctx)
}

func (s *service) ListRoomTypesByHotel(ctx context.Context, hotelID uint) ([]RoomType, error) {
	return s.repo.GetRoomTypesByHotel(ctx, hotelID)
}

func (s *service) UpdateRoomType(ctx context.Context, id uint, req UpdateRoomTypeRequest) (*RoomType, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}

	rt, err := s.repo.UpdateRoomType(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	s.invalidateCatalogCache(ctx, id)
	return rt, nil
}

func (s *service) DeleteRoomType(ctx context.Context, id uint) error {
	if err := s.repo.DeleteRoomType(ctx, id); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx, id)
	return nil
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	if _, err := s.repo.GetRoomTypeByID(ctx, req.RoomTypeID); err != nil {
		return nil, err
	}

	room := &Room{
		RoomTypeID: req.RoomTypeID,
		RoomNumber: req.RoomNumber,
		Floor:      req.Floor,
		Status:     RoomStatusAvailable,
	}
	if err := s.repo.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}
	return room, nil
}

func (s *service) GetRoom(ctx context.Context, id uint) (*Room, error) {
	return s.repo.GetRoomByID(ctx, id)
}

func (s *service) ListRoomsByType(ctx context.Context, roomTypeID uint) ([]Room, error) {
	return s.repo.GetRoomsByType(ctx, roomTypeID)
}

func (s *service) UpdateRoom(ctx context.Context, id uint, req UpdateRoomRequest) (*Room, error) {
	updates := map[string]interface{}{}
	if req.RoomNumber != nil {
		updates["room_number"] = *req.RoomNumber
	}
	if req.Floor != nil {
		updates["floor"] = *req.Floor
	}
	if req.Status != nil {
		if !RoomStatus(*req.Status).IsValid() {
			return nil, fmt.Errorf("invalid room status: %s", *req.Status)
		}
		updates["status"] = *req.Status
	}
	return s.repo.UpdateRoom(ctx, id, updates)
}

func (s *service) DeleteRoom(ctx context.Context, id uint) error {
	return s.repo.DeleteRoom(ctx, id)
}

func (s *service) CheckAvailability(ctx context.Context, query AvailabilityQuery) (*Room, error) {
	checkIn, checkOut, err := ParseStayDates(query.CheckIn, query.CheckOut)
	if err != nil {
		return nil, err
	}
	return s.repo.FindAvailableRoom(ctx, query.RoomTypeID, checkIn, checkOut)
}

// ParseStayDates parses and validates a check-in/check-out date pair.
// Dates are interpreted as UTC midnights.
func ParseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.ParseInLocation(dateLayout, checkInStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}
	checkOut, err := time.ParseInLocation(dateLayout, checkOutStr, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDateFormat
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, ErrCheckOutNotAfterIn
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if checkIn.Before(today) {
		return time.Time{}, time.Time{}, ErrCheckInPast
	}

	return checkIn, checkOut, nil
}

func (s *service) invalidateCatalogCache(ctx context.Context, roomTypeID uint) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, cache.KeyRoomTypeList)
	_ = s.cacheService.Delete(ctx, fmt.Sprintf("%s%d", cache.KeyRoomTypeDetail, roomTypeID))
}
