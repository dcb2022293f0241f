package packages

type PackageItemRequest struct {
	Kind       string `json:"kind" binding:"required,oneof=ROOM SERVICE"`
	RoomTypeID *uint  `json:"room_type_id"`
	ServiceID  *uint  `json:"service_id"`
	Quantity   int    `json:"quantity" binding:"required,min=1"`
}

type CreatePackageRequest struct {
	Name        string               `json:"name" binding:"required,min=2,max=255"`
	Description string               `json:"description" binding:"max=2000"`
	Price       float64              `json:"price" binding:"required,gt=0"`
	Nights      int                  `json:"nights" binding:"required,min=1"`
	Items       []PackageItemRequest `json:"items" binding:"required,min=1,dive"`
}

type UpdatePackageRequest struct {
	Name        *string              `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string              `json:"description" binding:"omitempty,max=2000"`
	Price       *float64             `json:"price" binding:"omitempty,gt=0"`
	Nights      *int                 `json:"nights" binding:"omitempty,min=1"`
	IsActive    *bool                `json:"is_active"`
	Items       []PackageItemRequest `json:"items" binding:"omitempty,dive"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Price       float64 `json:"price" binding:"required,min=0"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Description *string  `json:"description" binding:"omitempty,max=500"`
	Price       *float64 `json:"price" binding:"omitempty,min=0"`
}
