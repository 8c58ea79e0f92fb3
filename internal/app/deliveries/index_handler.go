package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/safatanc/promotion-core/internal/app/pkg"
)

const (
	ServiceName    = "promotion-core"
	ServiceVersion = "1.0.0"
)

type IndexHandler struct{}

func NewIndexHandler() *IndexHandler {
	return &IndexHandler{}
}

func (h *IndexHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.GetIndex)
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

func (h *IndexHandler) GetIndex(c *fiber.Ctx) error {
	return pkg.SuccessResponse(c, models.IndexResponse{
		Name:    ServiceName,
		Version: ServiceVersion,
		Paths:   "/promotions",
	})
}
