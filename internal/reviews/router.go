package reviews

import (
	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupReviewRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	public := router.Group("/reviews")
	{
		public.GET("/hotel/:hotelId", controller.ListByHotel)
	}

	protected := router.Group("/reviews")
	protected.Use(middleware.JWTAuthWithConfig(cfg))
	{
		protected.POST("", controller.Create)
		protected.GET("/mine", controller.ListMine)
	}

	admin := router.Group("/admin/reviews")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.DELETE("/:id", controller.Delete)
	}
}
