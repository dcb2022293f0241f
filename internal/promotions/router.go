package promotions

import (
	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPromotionRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	// Customers can look up a code while filling in the booking form
	public := router.Group("/promotions")
	{
		public.GET("/code/:code", controller.GetByCode)
	}

	admin := router.Group("/admin/promotions")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("", controller.Create)
		admin.GET("", controller.List)
		admin.GET("/:id", controller.Get)
		admin.PUT("/:id", controller.Update)
		admin.DELETE("/:id", controller.Delete)
	}
}
