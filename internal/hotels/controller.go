package hotels

import (
	"net/http"
	"strconv"

	"roomly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	CreateHotel(c *gin.Context)
	GetHotel(c *gin.Context)
	ListHotels(c *gin.Context)
	UpdateHotel(c *gin.Context)
	DeleteHotel(c *gin.Context)

	CreateRoomType(c *gin.Context)
	GetRoomType(c *gin.Context)
	ListRoomTypes(c *gin.Context)
	UpdateRoomType(c *gin.Context)
	DeleteRoomType(c *gin.Context)

	CreateRoom(c *gin.Context)
	GetRoom(c *gin.Context)
	ListRooms(c *gin.Context)
	UpdateRoom(c *gin.Context)
	DeleteRoom(c *gin.Context)

	CheckAvailability(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid id", nil, err.Error())
		return 0, false
	}
	return uint(id), true
}

func (ctrl *controller) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hotel, err := ctrl.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create hotel", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Hotel created successfully", hotel, nil)
}

func (ctrl *controller) GetHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	hotel, err := ctrl.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrHotelNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotel retrieved successfully", hotel, nil)
}

func (ctrl *controller) ListHotels(c *gin.Context) {
	hotels, err := ctrl.service.ListHotels(c.Request.Context(), c.Query("city"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list hotels", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotels retrieved successfully", hotels, nil)
}

func (ctrl *controller) UpdateHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateHotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	hotel, err := ctrl.service.UpdateHotel(c.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrHotelNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotel updated successfully", hotel, nil)
}

func (ctrl *controller) DeleteHotel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteHotel(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrHotelNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Hotel deleted successfully", nil, nil)
}

func (ctrl *controller) CreateRoomType(c *gin.Context) {
	var req CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	rt, err := ctrl.service.CreateRoomType(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrHotelNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Room type created successfully", rt, nil)
}

func (ctrl *controller) GetRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rt, err := ctrl.service.GetRoomType(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomTypeNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room type retrieved successfully", rt, nil)
}

func (ctrl *controller) ListRoomTypes(c *gin.Context) {
	// Optional hotel filter
	if hotelIDStr := c.Query("hotel_id"); hotelIDStr != "" {
		hotelID, err := strconv.ParseUint(hotelIDStr, 10, 64)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel_id", nil, err.Error())
			return
		}
		roomTypes, err := ctrl.service.ListRoomTypesByHotel(c.Request.Context(), uint(hotelID))
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list room types", nil, nil)
			return
		}
		response.RespondJSON(c, "success", http.StatusOK, "Room types retrieved successfully", roomTypes, nil)
		return
	}

	roomTypes, err := ctrl.service.ListRoomTypes(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list room types", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room types retrieved successfully", roomTypes, nil)
}

func (ctrl *controller) UpdateRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	rt, err := ctrl.service.UpdateRoomType(c.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomTypeNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room type updated successfully", rt, nil)
}

func (ctrl *controller) DeleteRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteRoomType(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomTypeNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room type deleted successfully", nil, nil)
}

func (ctrl *controller) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomTypeNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Room created successfully", room, nil)
}

func (ctrl *controller) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	room, err := ctrl.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room retrieved successfully", room, nil)
}

func (ctrl *controller) ListRooms(c *gin.Context) {
	roomTypeID, err := strconv.ParseUint(c.Query("room_type_id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "room_type_id query parameter is required", nil, nil)
		return
	}

	rooms, err := ctrl.service.ListRoomsByType(c.Request.Context(), uint(roomTypeID))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list rooms", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Rooms retrieved successfully", rooms, nil)
}

func (ctrl *controller) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	room, err := ctrl.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room updated successfully", room, nil)
}

func (ctrl *controller) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctrl.service.DeleteRoom(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrRoomNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room deleted successfully", nil, nil)
}

func (ctrl *controller) CheckAvailability(c *gin.Context) {
	var query AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid availability query", nil, err.Error())
		return
	}

	room, err := ctrl.service.CheckAvailability(c.Request.Context(), query)
	if err != nil {
		switch err {
		case ErrInvalidDateFormat, ErrCheckOutNotAfterIn, ErrCheckInPast:
			response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		case ErrNoRoomAvailable:
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to check availability", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Room available", room, nil)
}
