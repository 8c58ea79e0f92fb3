package deliveries

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/pkg"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewHealthHandler(db *gorm.DB, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		db:     db,
		logger: logger,
	}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.GetHealth)
}

// GetHealth reports healthy only while the database answers a ping.
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	sqlDB, err := h.db.DB()
	if err == nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		h.logger.WithError(err).Warn("health check failed")
		return pkg.ErrorResponse(c, errors.NewServiceUnavailableError("database unavailable"))
	}

	return pkg.SuccessResponse(c, "promotion-core")
}
