// api/routes/router.go
package routes

import (
	"context"
	"net/http"
	"time"

	"roomly/internal/analytics"
	"roomly/internal/auth"
	"roomly/internal/bookings"
	"roomly/internal/hotels"
	"roomly/internal/notifications"
	"roomly/internal/packages"
	"roomly/internal/promotions"
	"roomly/internal/reviews"
	"roomly/internal/shared/config"
	"roomly/internal/shared/database"
	"roomly/internal/sweep"
	"roomly/pkg/cache"
	"roomly/pkg/crypto"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	encryptor *crypto.Encryptor
	notifier  notifications.Service

	sweepService sweep.Service
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, encryptor *crypto.Encryptor, notifier notifications.Service) *Router {
	return &Router{
		config:    cfg,
		db:        db,
		encryptor: encryptor,
		notifier:  notifier,
	}
}

// SetupRoutes wires every domain and mounts its routes.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	cacheService := cache.NewService(r.db.GetRedisClient())
	pg := r.db.GetPostgreSQL()

	// Auth
	authService := auth.NewService(auth.NewRepository(pg), r.config)
	authController := auth.NewController(authService)

	// Catalog
	hotelService := hotels.NewService(hotels.NewRepository(pg), r.config)
	hotelService.SetCacheService(cacheService)
	hotelController := hotels.NewController(hotelService)

	// Promotions
	promotionService := promotions.NewService(promotions.NewRepository(pg), r.encryptor)
	promotionController := promotions.NewController(promotionService)

	// Packages
	packageService := packages.NewService(packages.NewRepository(pg), r.config)
	packageService.SetCacheService(cacheService)
	packageController := packages.NewController(packageService)

	// Bookings
	bookingRepo := bookings.NewRepository(pg)
	bookingService := bookings.NewService(bookingRepo, hotelService, promotionService, packageService)
	bookingService.SetNotificationPublisher(r.notifier)
	bookingController := bookings.NewController(bookingService)

	// Reviews. The two domains see each other only through narrow
	// interfaces wired here.
	reviewService := reviews.NewService(reviews.NewRepository(pg))
	reviewService.SetBookingReader(&bookingSummaryReader{bookingService})
	bookingService.SetReviewChecker(reviewService)
	reviewController := reviews.NewController(reviewService)

	// Admin reporting
	analyticsService := analytics.NewService(analytics.NewRepository(pg))
	analyticsController := analytics.NewController(analyticsService)

	// Background sweep, handed back to main for scheduling.
	r.sweepService = sweep.NewService(bookingRepo, promotionService)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		auth.SetupAuthRoutes(api, authController, r.config)
		hotels.SetupHotelRoutes(api, hotelController, r.config)
		promotions.SetupPromotionRoutes(api, promotionController, r.config)
		packages.SetupPackageRoutes(api, packageController, r.config)
		bookings.SetupBookingRoutes(api, bookingController, r.config)
		reviews.SetupReviewRoutes(api, reviewController, r.config)
		analytics.SetupAnalyticsRoutes(api, analyticsController, r.config)
	}
}

// SweepService exposes the sweep built during SetupRoutes.
func (r *Router) SweepService() sweep.Service {
	return r.sweepService
}

// bookingSummaryReader adapts the booking service to the narrow reader
// the reviews package declares.
type bookingSummaryReader struct {
	bookingService bookings.Service
}

func (a *bookingSummaryReader) GetBookingInfo(ctx context.Context, bookingID uint) (*reviews.BookingInfo, error) {
	summary, err := a.bookingService.GetSummary(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return &reviews.BookingInfo{
		ID:      summary.ID,
		UserID:  summary.UserID,
		HotelID: summary.HotelID,
		Status:  summary.Status,
	}, nil
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "roomly-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "roomly-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})
}
