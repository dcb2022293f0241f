package packages

import (
	"roomly/internal/shared/config"
	"roomly/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

func SetupPackageRoutes(router *gin.RouterGroup, controller Controller, cfg *config.Config) {
	public := router.Group("/packages")
	{
		public.GET("", controller.ListPackages)
		public.GET("/:id", controller.GetPackage)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.JWTAuthWithConfig(cfg), middleware.RequireAdmin())
	{
		admin.POST("/packages", controller.CreatePackage)
		admin.PUT("/packages/:id", controller.UpdatePackage)
		admin.DELETE("/packages/:id", controller.DeletePackage)

		admin.POST("/services", controller.CreateService)
		admin.GET("/services", controller.ListServices)
		admin.PUT("/services/:id", controller.UpdateService)
		admin.DELETE("/services/:id", controller.DeleteService)
	}
}
