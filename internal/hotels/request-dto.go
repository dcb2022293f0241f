package hotels

type CreateHotelRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=255"`
	Description string `json:"description" binding:"max=2000"`
	Address     string `json:"address" binding:"required,max=500"`
	City        string `json:"city" binding:"required,max=100"`
	Phone       string `json:"phone" binding:"omitempty,max=30"`
	Email       string `json:"email" binding:"omitempty,email"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
}

type UpdateHotelRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=30"`
	Email       *string `json:"email" binding:"omitempty,email"`
	ImageURL    *string `json:"image_url" binding:"omitempty,url"`
}

type CreateRoomTypeRequest struct {
	HotelID     uint    `json:"hotel_id" binding:"required"`
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"max=2000"`
	BasePrice   float64 `json:"base_price" binding:"required,gt=0"`
	Capacity    int     `json:"capacity" binding:"required,min=1,max=10"`
	ImageURL    string  `json:"image_url" binding:"omitempty,url"`
}

type UpdateRoomTypeRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=2000"`
	BasePrice   *float64 `json:"base_price" binding:"omitempty,gt=0"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1,max=10"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,url"`
}

type CreateRoomRequest struct {
	RoomTypeID uint   `json:"room_type_id" binding:"required"`
	RoomNumber string `json:"room_number" binding:"required,max=20"`
	Floor      int    `json:"floor" binding:"omitempty,min=0,max=200"`
}

type UpdateRoomRequest struct {
	RoomNumber *string `json:"room_number" binding:"omitempty,max=20"`
	Floor      *int    `json:"floor" binding:"omitempty,min=0,max=200"`
	Status     *string `json:"status" binding:"omitempty,oneof=AVAILABLE OCCUPIED UNDER_MAINTENANCE CLEANING"`
}

// AvailabilityQuery is the search input for a free room of a type.
type AvailabilityQuery struct {
	RoomTypeID uint   `form:"room_type_id" binding:"required"`
	CheckIn    string `form:"check_in" binding:"required"`  // 2006-01-02
	CheckOut   string `form:"check_out" binding:"required"` // 2006-01-02
}
