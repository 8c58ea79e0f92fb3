package deliveries

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/middlewares"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/safatanc/promotion-core/internal/app/pkg"
	"github.com/safatanc/promotion-core/internal/app/services"
)

type PromotionHandler struct {
	promotionService    *services.PromotionService
	rateLimitMiddleware *middlewares.RateLimitMiddleware
}

func NewPromotionHandler(promotionService *services.PromotionService, rateLimitMiddleware *middlewares.RateLimitMiddleware) *PromotionHandler {
	return &PromotionHandler{
		promotionService:    promotionService,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

func (h *PromotionHandler) RegisterRoutes(router fiber.Router) {
	promotionGroup := router.Group("/promotions")
	requireJSON := middlewares.RequireContentType(fiber.MIMEApplicationJSON)

	promotionGroup.Get("/", h.GetPromotions)
	promotionGroup.Post("/", requireJSON, h.CreatePromotion)
	promotionGroup.Get("/:id", h.GetPromotion)
	promotionGroup.Put("/:id", requireJSON, h.UpdatePromotion)
	promotionGroup.Patch("/:id", requireJSON, h.PatchPromotion)
	promotionGroup.Delete("/:id", h.DeletePromotion)
	promotionGroup.Get("/:id/audit", h.GetPromotionAuditLogs)

	// Redeems get their own, stricter budget on top of the global one
	promotionGroup.Post("/:id/redeem", h.rateLimitMiddleware.LimitRedeemByIP(middlewares.RedeemLimit), h.RedeemPromotion)
}

func (h *PromotionHandler) CreatePromotion(c *fiber.Ctx) error {
	data, err := decodeBody(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	promotion, err := h.promotionService.CreatePromotion(data)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Location("/promotions/" + strconv.FormatInt(promotion.ID, 10))
	return pkg.SuccessResponseWithStatus(c, fiber.StatusCreated, promotion.Serialize())
}

func (h *PromotionHandler) GetPromotion(c *fiber.Ctx) error {
	promotion, err := h.promotionService.GetPromotion(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, promotion.Serialize())
}

func (h *PromotionHandler) GetPromotions(c *fiber.Ctx) error {
	query, err := parsePromotionQuery(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	promotions, err := h.promotionService.GetPromotions(query)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, serializeAll(promotions))
}

func (h *PromotionHandler) UpdatePromotion(c *fiber.Ctx) error {
	data, err := decodeBody(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	promotion, err := h.promotionService.UpdatePromotion(c.Params("id"), data)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, promotion.Serialize())
}

func (h *PromotionHandler) PatchPromotion(c *fiber.Ctx) error {
	data, err := decodeBody(c)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	promotion, err := h.promotionService.PatchPromotion(c.Params("id"), data)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, promotion.Serialize())
}

func (h *PromotionHandler) DeletePromotion(c *fiber.Ctx) error {
	if err := h.promotionService.DeletePromotion(c.Params("id")); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PromotionHandler) RedeemPromotion(c *fiber.Ctx) error {
	promotion, err := h.promotionService.RedeemPromotion(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	middlewares.PromotionRedemptionsTotal.Inc()
	return pkg.SuccessResponse(c, promotion.Serialize())
}

func (h *PromotionHandler) GetPromotionAuditLogs(c *fiber.Ctx) error {
	logs, err := h.promotionService.GetPromotionAuditLogs(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, logs)
}

// decodeBody keeps numbers as json.Number so large integers survive and
// fractions can be told apart from whole numbers.
func decodeBody(c *fiber.Ctx) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	decoder.UseNumber()

	var data any
	if err := decoder.Decode(&data); err != nil {
		return nil, errors.NewValidationError(models.MsgMalformedBody)
	}
	if decoder.More() {
		return nil, errors.NewValidationError(models.MsgMalformedBody)
	}
	return data, nil
}

func parsePromotionQuery(c *fiber.Ctx) (*models.PromotionQuery, error) {
	args := c.Context().QueryArgs()
	query := &models.PromotionQuery{}

	if args.Has("name") {
		name := c.Query("name")
		query.Name = &name
	}
	if args.Has("product_id") {
		productID, err := strconv.ParseInt(c.Query("product_id"), 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("invalid product_id")
		}
		query.ProductID = &productID
	}
	if args.Has("discount_ratio") {
		discountRatio, err := strconv.ParseInt(c.Query("discount_ratio"), 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("invalid discount_ratio")
		}
		query.DiscountRatio = &discountRatio
	}

	return query, nil
}

func serializeAll(promotions []models.Promotion) []map[string]any {
	serialized := make([]map[string]any, 0, len(promotions))
	for i := range promotions {
		serialized = append(serialized, promotions[i].Serialize())
	}
	return serialized
}
