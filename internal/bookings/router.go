package bookings

import (
	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Customer routes
	bookings := router.Group("/bookings")
	bookings.Use(middleware.JWTAuthWithConfig(cfg))
	{
		bookings.POST("", controller.Create)
		bookings.GET("", controller.ListMine)
		bookings.GET("/:id", controller.Get)
		bookings.POST("/:id/pay", controller.Pay)
		bookings.POST("/:id/cancel", controller.Cancel)
		bookings.GET("/:id/qr.png", controller.QRCode)
	}

	// Front-desk scan endpoint
	staff := router.Group("/staff")
	staff.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireStaff())
	{
		staff.POST("/scan", controller.Scan)
	}

	// Admin reporting
	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.GET("/bookings", controller.ListAll)
	}
}
