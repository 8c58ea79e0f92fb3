package services

import (
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/safatanc/promotion-core/internal/app/pkg"
	"github.com/safatanc/promotion-core/internal/app/repositories"
	"github.com/safatanc/promotion-core/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

// PromotionService turns transport input (string ids, decoded JSON bodies,
// query filters) into repository calls and records an audit entry for every
// committed change.
type PromotionService struct {
	repository   *repositories.PromotionRepository
	auditService *AuditService
	validator    *infrastructures.Validator
	logger       *logrus.Logger
}

func NewPromotionService(
	repository *repositories.PromotionRepository,
	auditService *AuditService,
	validator *infrastructures.Validator,
	logger *logrus.Logger,
) *PromotionService {
	return &PromotionService{
		repository:   repository,
		auditService: auditService,
		validator:    validator,
		logger:       logger,
	}
}

func (s *PromotionService) CreatePromotion(data any) (*models.Promotion, error) {
	promotion, err := models.DeserializePromotion(data)
	if err != nil {
		return nil, err
	}

	promotion, err = s.repository.Save(promotion)
	if err != nil {
		return nil, err
	}

	s.auditService.RecordPromotionChange(promotion.ID, models.AuditActionCreate, nil, promotion)
	return promotion, nil
}

func (s *PromotionService) GetPromotion(promotionID string) (*models.Promotion, error) {
	id, err := pkg.ParsePromotionID(promotionID)
	if err != nil {
		return nil, err
	}

	return s.repository.FindOrFail(id)
}

// GetPromotions applies a single filter: name, then product_id, then
// discount_ratio. With none of them set every promotion is returned.
func (s *PromotionService) GetPromotions(query *models.PromotionQuery) ([]models.Promotion, error) {
	if query == nil {
		query = &models.PromotionQuery{}
	}
	if err := s.validator.Validate(query); err != nil {
		return nil, err
	}

	switch {
	case query.Name != nil && *query.Name != "":
		return s.repository.FindByName(*query.Name)
	case query.ProductID != nil:
		return s.repository.FindByProductID(*query.ProductID)
	case query.DiscountRatio != nil:
		return s.repository.FindByDiscountRatio(*query.DiscountRatio)
	default:
		return s.repository.All()
	}
}

// UpdatePromotion replaces every client-settable field of an existing promotion.
func (s *PromotionService) UpdatePromotion(promotionID string, data any) (*models.Promotion, error) {
	return s.update(promotionID, func(promotion *models.Promotion) error {
		return promotion.Deserialize(data)
	})
}

// PatchPromotion changes only the fields present in data.
func (s *PromotionService) PatchPromotion(promotionID string, data any) (*models.Promotion, error) {
	return s.update(promotionID, func(promotion *models.Promotion) error {
		return promotion.DeserializePartial(data)
	})
}

func (s *PromotionService) update(promotionID string, change func(*models.Promotion) error) (*models.Promotion, error) {
	id, err := pkg.ParsePromotionID(promotionID)
	if err != nil {
		return nil, err
	}

	promotion, err := s.repository.FindOrFail(id)
	if err != nil {
		return nil, err
	}
	before := *promotion

	if err := change(promotion); err != nil {
		return nil, err
	}

	promotion, err = s.repository.Save(promotion)
	if err != nil {
		return nil, err
	}

	s.auditService.RecordPromotionChange(promotion.ID, models.AuditActionUpdate, &before, promotion)
	return promotion, nil
}

// DeletePromotion removes the promotion if it exists. Deleting an absent
// promotion succeeds.
func (s *PromotionService) DeletePromotion(promotionID string) error {
	id, err := pkg.ParsePromotionID(promotionID)
	if err != nil {
		return err
	}

	promotion, err := s.repository.Find(id)
	if err != nil {
		return err
	}
	if promotion == nil {
		return nil
	}

	if err := s.repository.Delete(promotion); err != nil {
		return err
	}

	s.auditService.RecordPromotionChange(id, models.AuditActionDelete, promotion, nil)
	return nil
}

func (s *PromotionService) RedeemPromotion(promotionID string) (*models.Promotion, error) {
	id, err := pkg.ParsePromotionID(promotionID)
	if err != nil {
		return nil, err
	}

	promotion, err := s.repository.Redeem(id)
	if err != nil {
		return nil, err
	}

	before := *promotion
	before.Counter--
	s.auditService.RecordPromotionChange(id, models.AuditActionRedeem, &before, promotion)
	return promotion, nil
}

// GetPromotionAuditLogs returns the trail of a promotion id. Trails of
// deleted promotions stay readable.
func (s *PromotionService) GetPromotionAuditLogs(promotionID string) ([]models.AuditLog, error) {
	id, err := pkg.ParsePromotionID(promotionID)
	if err != nil {
		return nil, err
	}

	return s.auditService.GetAuditLogs(id)
}
