package bookings

import (
	"errors"
	"net/http"
	"strconv"

	"roomly/internal/shared/middleware"
	"roomly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Create(c *gin.Context)
	ListMine(c *gin.Context)
	Get(c *gin.Context)
	Pay(c *gin.Context)
	Cancel(c *gin.Context)
	QRCode(c *gin.Context)

	Scan(c *gin.Context)
	ListAll(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

// respondError translates the service error taxonomy onto HTTP statuses:
// validation 400, ownership and missing rows 404, state conflicts 409.
func respondError(c *gin.Context, err error) {
	var validationErr *ValidationError
	var conflictErr *StateConflictError

	switch {
	case errors.As(err, &validationErr):
		response.RespondJSON(c, "error", http.StatusBadRequest, validationErr.Message, nil, nil)
	case errors.As(err, &conflictErr):
		response.RespondJSON(c, "error", http.StatusConflict, conflictErr.Message, nil, nil)
	case errors.Is(err, ErrBookingNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Something went wrong, please try again later", nil, nil)
	}
}

func (ctrl *controller) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.Create(c.Request.Context(), userID, c.ClientIP(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

func (ctrl *controller) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	bookings, err := ctrl.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func (ctrl *controller) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	booking, err := ctrl.service.GetForUser(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking retrieved successfully", booking, nil)
}

func (ctrl *controller) Pay(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	userEmail, _ := middleware.UserEmailFromContext(c)
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.Pay(c.Request.Context(), userID, userEmail, id, c.ClientIP(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Payment completed successfully", booking, nil)
}

func (ctrl *controller) Cancel(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	booking, err := ctrl.service.Cancel(c.Request.Context(), userID, id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Booking cancelled successfully", booking, nil)
}

// QRCode serves the booking's check-in code as a PNG image.
func (ctrl *controller) QRCode(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}
	userEmail, _ := middleware.UserEmailFromContext(c)
	id, ok := parseBookingID(c)
	if !ok {
		return
	}

	size := 0
	if raw := c.Query("size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 64 || parsed > 1024 {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Size must be between 64 and 1024", nil, nil)
			return
		}
		size = parsed
	}

	png, err := ctrl.service.QRCodePNG(c.Request.Context(), userID, userEmail, id, size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// Scan is the staff-facing endpoint behind the front-desk QR reader.
func (ctrl *controller) Scan(c *gin.Context) {
	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.Scan(c.Request.Context(), req.Payload)
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, result.Message, result, nil)
}

func (ctrl *controller) ListAll(c *gin.Context) {
	bookings, err := ctrl.service.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Bookings retrieved successfully", bookings, nil)
}

func parseBookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid booking id", nil, err.Error())
		return 0, false
	}
	return uint(id), true
}
