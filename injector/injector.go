//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/safatanc/promotion-core/internal/app/deliveries"
	"github.com/safatanc/promotion-core/internal/app/middlewares"
	"github.com/safatanc/promotion-core/internal/app/repositories"
	"github.com/safatanc/promotion-core/internal/app/services"
	"github.com/safatanc/promotion-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewLogger,
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
)

var repositorySet = wire.NewSet(
	repositories.NewPromotionRepository,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewAuditService,
	services.NewPromotionService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
	middlewares.NewRateLimitMiddleware,
	middlewares.NewRequestLogger,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewIndexHandler,
	deliveries.NewHealthHandler,
	deliveries.NewPromotionHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication(config *infrastructures.AppConfig) (*Application, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
