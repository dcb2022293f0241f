package reviews

import (
	"net/http"
	"strconv"

	"roomly/internal/shared/middleware"
	"roomly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Create(c *gin.Context)
	ListByHotel(c *gin.Context)
	ListMine(c *gin.Context)
	Delete(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	review, err := ctrl.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case ErrBookingNotFound:
			response.RespondJSON(c, "error", http.StatusNotFound, "Booking not found", nil, nil)
		case ErrAlreadyExists:
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		case ErrBookingNotReviewable:
			response.RespondJSON(c, "error", http.StatusConflict, err.Error(), nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create review", nil, nil)
		}
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Review created successfully", review, nil)
}

func (ctrl *controller) ListByHotel(c *gin.Context) {
	hotelID, err := strconv.ParseUint(c.Param("hotelId"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid hotel id", nil, err.Error())
		return
	}

	reviews, err := ctrl.service.ListByHotel(c.Request.Context(), uint(hotelID))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list reviews", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reviews retrieved successfully", reviews, nil)
}

func (ctrl *controller) ListMine(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	reviews, err := ctrl.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list reviews", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Reviews retrieved successfully", reviews, nil)
}

func (ctrl *controller) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid review id", nil, err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), uint(id)); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrReviewNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Review deleted successfully", nil, nil)
}
