package repositories

import (
	stderrors "errors"
	"strconv"

	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PromotionRepository persists promotions. It owns its store handle; there is
// no shared session between calls.
type PromotionRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewPromotionRepository(db *gorm.DB, logger *logrus.Logger) *PromotionRepository {
	return &PromotionRepository{
		db:     db,
		logger: logger,
	}
}

// Save creates the promotion when it has no id yet, with a zero counter.
// Otherwise it replaces name, product_id and discount_ratio at that id and
// leaves the stored counter alone. The promotion is refreshed from the store.
func (r *PromotionRepository) Save(promotion *models.Promotion) (*models.Promotion, error) {
	if !promotion.IsPersisted() {
		promotion.Counter = 0
		if err := r.db.Create(promotion).Error; err != nil {
			return nil, errors.NewStoreError(err, "Failed to create promotion")
		}
		r.logger.WithField("promotion_id", promotion.ID).Info("promotion created")
		return promotion, nil
	}

	err := r.db.Model(&models.Promotion{}).
		Where("id = ?", promotion.ID).
		Updates(map[string]interface{}{
			"name":           promotion.Name,
			"product_id":     promotion.ProductID,
			"discount_ratio": promotion.DiscountRatio,
		}).Error
	if err != nil {
		return nil, errors.NewStoreError(err, "Failed to update promotion")
	}

	stored, err := r.FindOrFail(promotion.ID)
	if err != nil {
		return nil, err
	}
	promotion.Counter = stored.Counter

	r.logger.WithField("promotion_id", promotion.ID).Info("promotion updated")
	return promotion, nil
}

// Delete removes the promotion. Unsaved or already deleted promotions are a no-op.
func (r *PromotionRepository) Delete(promotion *models.Promotion) error {
	if promotion == nil || !promotion.IsPersisted() {
		return nil
	}

	if err := r.db.Delete(&models.Promotion{}, promotion.ID).Error; err != nil {
		return errors.NewStoreError(err, "Failed to delete promotion")
	}

	r.logger.WithField("promotion_id", promotion.ID).Info("promotion deleted")
	return nil
}

// Find returns nil without an error when no promotion has this id.
func (r *PromotionRepository) Find(id int64) (*models.Promotion, error) {
	r.logger.WithField("promotion_id", id).Info("processing lookup")

	var promotion models.Promotion
	err := r.db.Where("id = ?", id).Take(&promotion).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.NewStoreError(err, "Failed to get promotion")
	}

	return &promotion, nil
}

func (r *PromotionRepository) FindOrFail(id int64) (*models.Promotion, error) {
	promotion, err := r.Find(id)
	if err != nil {
		return nil, err
	}
	if promotion == nil {
		return nil, errors.NewNotFoundError(notFoundMessage(id))
	}
	return promotion, nil
}

func (r *PromotionRepository) FindByName(name string) ([]models.Promotion, error) {
	r.logger.WithField("name", name).Info("processing name query")
	return r.find(r.db.Where("name = ?", name))
}

func (r *PromotionRepository) FindByProductID(productID int64) ([]models.Promotion, error) {
	r.logger.WithField("product_id", productID).Info("processing product_id query")
	return r.find(r.db.Where("product_id = ?", productID))
}

func (r *PromotionRepository) FindByDiscountRatio(discountRatio int64) ([]models.Promotion, error) {
	r.logger.WithField("discount_ratio", discountRatio).Info("processing discount_ratio query")
	return r.find(r.db.Where("discount_ratio = ?", discountRatio))
}

func (r *PromotionRepository) All() ([]models.Promotion, error) {
	r.logger.Info("processing all promotions")
	return r.find(r.db)
}

func (r *PromotionRepository) find(query *gorm.DB) ([]models.Promotion, error) {
	promotions := []models.Promotion{}
	if err := query.Order("id ASC").Find(&promotions).Error; err != nil {
		return nil, errors.NewStoreError(err, "Failed to get promotions")
	}
	return promotions, nil
}

// RemoveAll drops and recreates the promotions table. Ids start over.
func (r *PromotionRepository) RemoveAll() error {
	r.logger.Warn("removing all promotions")

	if err := r.db.Migrator().DropTable(&models.Promotion{}); err != nil {
		return errors.NewStoreError(err, "Failed to drop promotions")
	}
	if err := r.db.AutoMigrate(&models.Promotion{}); err != nil {
		return errors.NewStoreError(err, "Failed to create promotions")
	}
	return nil
}

// Redeem adds one to the counter of promotion id. The increment is a single
// UPDATE evaluated by the store, so concurrent redeems never lose an update;
// the row is read back in the same transaction.
func (r *PromotionRepository) Redeem(id int64) (*models.Promotion, error) {
	r.logger.WithField("promotion_id", id).Info("redeem promotion")

	var promotion models.Promotion
	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Promotion{}).
			Where("id = ?", id).
			UpdateColumn("counter", gorm.Expr("counter + ?", 1))
		if result.Error != nil {
			return errors.NewStoreError(result.Error, "Failed to redeem promotion")
		}
		if result.RowsAffected == 0 {
			return errors.NewNotFoundError(notFoundMessage(id))
		}

		if err := tx.Where("id = ?", id).Take(&promotion).Error; err != nil {
			return errors.NewStoreError(err, "Failed to read redeemed promotion")
		}
		return nil
	})
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, errors.NewStoreError(err, "Failed to commit redeem")
	}

	return &promotion, nil
}

func notFoundMessage(id int64) string {
	return "Promotion with id '" + strconv.FormatInt(id, 10) + "' was not found."
}
