package promotions

import (
	"net/http"
	"strconv"

	"roomly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	GetByCode(c *gin.Context)
	List(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) Create(c *gin.Context) {
	var req CreatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	promo, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusCreated, "Promotion created successfully", promo, nil)
}

func (ctrl *controller) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid promotion id", nil, err.Error())
		return
	}

	promo, err := ctrl.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPromotionNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion retrieved successfully", promo, nil)
}

// GetByCode lets a customer look up an active promotion while booking.
// Inactive codes are reported as not found rather than revealing state.
func (ctrl *controller) GetByCode(c *gin.Context) {
	promo, err := ctrl.service.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil || !promo.IsActive {
		response.RespondJSON(c, "error", http.StatusNotFound, "Promotion not found", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion retrieved successfully", promo, nil)
}

func (ctrl *controller) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	promos, err := ctrl.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to list promotions", nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotions retrieved successfully", promos, nil)
}

func (ctrl *controller) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid promotion id", nil, err.Error())
		return
	}

	var req UpdatePromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	promo, err := ctrl.service.Update(c.Request.Context(), uint(id), req)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPromotionNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion updated successfully", promo, nil)
}

func (ctrl *controller) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid promotion id", nil, err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), uint(id)); err != nil {
		statusCode := http.StatusInternalServerError
		if err == ErrPromotionNotFound {
			statusCode = http.StatusNotFound
		}
		response.RespondJSON(c, "error", statusCode, err.Error(), nil, nil)
		return
	}

	response.RespondJSON(c, "success", http.StatusOK, "Promotion deleted successfully", nil, nil)
}
