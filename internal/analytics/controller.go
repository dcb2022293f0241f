package analytics

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"roomly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller interface {
	GetOverview(c *gin.Context)
	GetHotelOccupancy(c *gin.Context)
	GetDailyBookingStats(c *gin.Context)
	GetPromotionUsage(c *gin.Context)
	ExportBookings(c *gin.Context)
}

type controller struct {
	service Service
}

func NewController(service Service) Controller {
	return &controller{service: service}
}

func (ctrl *controller) GetOverview(c *gin.Context) {
	overview, err := ctrl.service.GetOverview(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load overview", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Overview retrieved successfully", overview, nil)
}

func (ctrl *controller) GetHotelOccupancy(c *gin.Context) {
	occupancy, err := ctrl.service.GetHotelOccupancy(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load occupancy", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Occupancy retrieved successfully", occupancy, nil)
}

func (ctrl *controller) GetDailyBookingStats(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))

	stats, err := ctrl.service.GetDailyBookingStats(c.Request.Context(), days)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load booking stats", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Booking stats retrieved successfully", stats, nil)
}

func (ctrl *controller) GetPromotionUsage(c *gin.Context) {
	usage, err := ctrl.service.GetPromotionUsage(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to load promotion usage", nil, nil)
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Promotion usage retrieved successfully", usage, nil)
}

// ExportBookings streams a CSV of bookings created inside the requested
// window, defaulting to the last 30 days.
func (ctrl *controller) ExportBookings(c *gin.Context) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse(exportDateLayout, raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "from must be YYYY-MM-DD", nil, nil)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse(exportDateLayout, raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "to must be YYYY-MM-DD", nil, nil)
			return
		}
		// Inclusive end date
		to = parsed.AddDate(0, 0, 1)
	}
	if !from.Before(to) {
		response.RespondJSON(c, "error", http.StatusBadRequest, "from must be before to", nil, nil)
		return
	}

	data, err := ctrl.service.ExportBookingsCSV(c.Request.Context(), from, to)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to export bookings", nil, nil)
		return
	}

	filename := fmt.Sprintf("bookings-%s.csv", time.Now().UTC().Format(exportDateLayout))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}
