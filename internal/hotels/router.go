package hotels

import (
	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupHotelRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Public routes - anyone can browse the catalog
	public := router.Group("")
	{
		public.GET("/hotels", controller.ListHotels)
		public.GET("/hotels/:id", controller.GetHotel)
		public.GET("/room-types", controller.ListRoomTypes)
		public.GET("/room-types/:id", controller.GetRoomType)
		public.GET("/room-types/availability", controller.CheckAvailability)
	}

	// Admin routes - catalog management
	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("/hotels", controller.CreateHotel)
		admin.PUT("/hotels/:id", controller.UpdateHotel)
		admin.DELETE("/hotels/:id", controller.DeleteHotel)

		admin.POST("/room-types", controller.CreateRoomType)
		admin.PUT("/room-types/:id", controller.UpdateRoomType)
		admin.DELETE("/room-types/:id", controller.DeleteRoomType)

		admin.POST("/rooms", controller.CreateRoom)
		admin.GET("/rooms", controller.ListRooms)
		admin.GET("/rooms/:id", controller.GetRoom)
		admin.PUT("/rooms/:id", controller.UpdateRoom)
		admin.DELETE("/rooms/:id", controller.DeleteRoom)
	}
}
