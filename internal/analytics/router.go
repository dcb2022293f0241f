package analytics

import (
	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	admin := router.Group("/admin/analytics")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("/overview", controller.GetOverview)
		admin.GET("/occupancy", controller.GetHotelOccupancy)
		admin.GET("/bookings/daily", controller.GetDailyBookingStats)
		admin.GET("/promotions/usage", controller.GetPromotionUsage)
		admin.GET("/bookings/export", controller.ExportBookings)
	}
}
