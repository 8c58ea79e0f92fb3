package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/safatanc/promotion-core/internal/app/deliveries"
	"github.com/safatanc/promotion-core/internal/app/middlewares"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Application represents the main application container for promotion-core
type Application struct {
	Logger              *logrus.Logger
	DB                  *gorm.DB
	Redis               *redis.Client
	IndexHandler        *deliveries.IndexHandler
	HealthHandler       *deliveries.HealthHandler
	PromotionHandler    *deliveries.PromotionHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
	RequestLogger       *middlewares.RequestLogger
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	router.Use(middlewares.Metrics)
	router.Use(app.RequestLogger.Handle)

	// Apply global rate limit for public API
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	app.IndexHandler.RegisterRoutes(router)
	app.HealthHandler.RegisterRoutes(router)
	app.PromotionHandler.RegisterRoutes(router)
}

// Close releases the store and redis connections.
func (app *Application) Close() {
	if err := app.Redis.Close(); err != nil {
		app.Logger.WithError(err).Warn("failed to close redis")
	}

	sqlDB, err := app.DB.DB()
	if err == nil {
		err = sqlDB.Close()
	}
	if err != nil {
		app.Logger.WithError(err).Warn("failed to close database")
	}
}
