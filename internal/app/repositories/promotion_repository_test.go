package repositories

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/safatanc/promotion-core/internal/app/errors"
	"github.com/safatanc/promotion-core/internal/app/models"
	"github.com/safatanc/promotion-core/internal/infrastructures"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *PromotionRepository {
	t.Helper()

	logger, _ := test.NewNullLogger()
	db, err := infrastructures.NewDatabase(&infrastructures.AppConfig{
		DATABASE_DRIVER: infrastructures.DriverSQLite,
		DATABASE_URL:    filepath.Join(t.TempDir(), "promotions.db") + "?_pragma=busy_timeout(5000)",
	}, logger)
	require.NoError(t, err)

	repo := NewPromotionRepository(db, logger)
	require.NoError(t, repo.RemoveAll())
	return repo
}

func newPromotion(name string, productID, discountRatio int64) *models.Promotion {
	return &models.Promotion{Name: name, ProductID: productID, DiscountRatio: discountRatio}
}

func TestSaveCreatesPromotion(t *testing.T) {
	repo := newTestRepository(t)

	promotions, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, promotions)

	promotion := newPromotion("20%OFF", 9527, 80)
	assert.False(t, promotion.IsPersisted())

	saved, err := repo.Save(promotion)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
	assert.Equal(t, int64(0), saved.Counter)

	other, err := repo.Save(newPromotion("50%OFF", 26668, 50))
	require.NoError(t, err)
	assert.NotEqual(t, saved.ID, other.ID)

	promotions, err = repo.All()
	require.NoError(t, err)
	assert.Len(t, promotions, 2)
}

func TestSaveIgnoresClientCounterOnCreate(t *testing.T) {
	repo := newTestRepository(t)

	promotion := newPromotion("20%OFF", 9527, 80)
	promotion.Counter = 42

	saved, err := repo.Save(promotion)
	require.NoError(t, err)
	assert.Equal(t, int64(0), saved.Counter)

	found, err := repo.Find(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), found.Counter)
}

func TestSaveUpdatesPromotion(t *testing.T) {
	repo := newTestRepository(t)

	promotion, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)
	_, err = repo.Redeem(promotion.ID)
	require.NoError(t, err)

	promotion.Name = "BUY1GET1FREE"
	promotion.ProductID = 9528
	promotion.DiscountRatio = 50
	promotion.Counter = 0
	updated, err := repo.Save(promotion)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Equal(t, int64(1), updated.Counter)

	promotions, err := repo.All()
	require.NoError(t, err)
	require.Len(t, promotions, 1)
	assert.Equal(t, models.Promotion{ID: 1, Name: "BUY1GET1FREE", ProductID: 9528, DiscountRatio: 50, Counter: 1}, promotions[0])
}

func TestSaveUpdateOfMissingPromotion(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Save(&models.Promotion{ID: 99, Name: "ghost", ProductID: 1, DiscountRatio: 1})

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeletePromotion(t *testing.T) {
	repo := newTestRepository(t)

	promotion, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(promotion))
	require.NoError(t, repo.Delete(promotion))

	found, err := repo.Find(promotion.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteUnsavedPromotionIsNoop(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(newPromotion("50%OFF", 1, 50)))
	require.NoError(t, repo.Delete(nil))

	promotions, err := repo.All()
	require.NoError(t, err)
	assert.Len(t, promotions, 1)
}

func TestFind(t *testing.T) {
	repo := newTestRepository(t)
	saved, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)

	found, err := repo.Find(saved.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, *saved, *found)

	missing, err := repo.Find(0)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindOrFail(t *testing.T) {
	repo := newTestRepository(t)
	saved, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)

	found, err := repo.FindOrFail(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "20%OFF", found.Name)

	_, err = repo.FindOrFail(404)
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, "Promotion with id '404' was not found.", err.Error())
}

func TestFindByFilters(t *testing.T) {
	repo := newTestRepository(t)
	for _, p := range []*models.Promotion{
		newPromotion("20%OFF", 9527, 80),
		newPromotion("50%OFF", 26668, 50),
		newPromotion("20%OFF", 1111, 50),
	} {
		_, err := repo.Save(p)
		require.NoError(t, err)
	}

	byName, err := repo.FindByName("20%OFF")
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, int64(9527), byName[0].ProductID)
	assert.Equal(t, int64(1111), byName[1].ProductID)

	byProduct, err := repo.FindByProductID(26668)
	require.NoError(t, err)
	require.Len(t, byProduct, 1)
	assert.Equal(t, "50%OFF", byProduct[0].Name)

	byRatio, err := repo.FindByDiscountRatio(50)
	require.NoError(t, err)
	assert.Len(t, byRatio, 2)

	none, err := repo.FindByName("NOPE")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestRemoveAllResetsStore(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)

	require.NoError(t, repo.RemoveAll())

	promotions, err := repo.All()
	require.NoError(t, err)
	assert.Empty(t, promotions)

	saved, err := repo.Save(newPromotion("50%OFF", 26668, 50))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.ID)
}

func TestRedeem(t *testing.T) {
	repo := newTestRepository(t)
	saved, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)

	redeemed, err := repo.Redeem(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), redeemed.Counter)
	assert.Equal(t, "20%OFF", redeemed.Name)

	redeemed, err = repo.Redeem(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), redeemed.Counter)
}

func TestRedeemMissingPromotion(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Redeem(12)

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestConcurrentRedeem(t *testing.T) {
	repo := newTestRepository(t)
	target, err := repo.Save(newPromotion("20%OFF", 9527, 80))
	require.NoError(t, err)
	bystander, err := repo.Save(newPromotion("50%OFF", 26668, 50))
	require.NoError(t, err)

	const redeemers = 50
	var wg sync.WaitGroup
	errs := make(chan error, redeemers)
	for i := 0; i < redeemers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Redeem(target.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	found, err := repo.FindOrFail(target.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(redeemers), found.Counter)

	untouched, err := repo.FindOrFail(bystander.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), untouched.Counter)
}

func TestPromotionLifecycle(t *testing.T) {
	repo := newTestRepository(t)

	promotion, err := models.DeserializePromotion(map[string]any{"name": "20%OFF", "product_id": 9527.0, "discount_ratio": 80.0})
	require.NoError(t, err)
	promotion, err = repo.Save(promotion)
	require.NoError(t, err)
	assert.Equal(t, int64(1), promotion.ID)
	assert.Equal(t, int64(0), promotion.Counter)

	require.NoError(t, promotion.DeserializePartial(map[string]any{"discount_ratio": 50.0}))
	promotion, err = repo.Save(promotion)
	require.NoError(t, err)
	assert.Equal(t, "20%OFF", promotion.Name)
	assert.Equal(t, int64(50), promotion.DiscountRatio)

	_, err = repo.Redeem(promotion.ID)
	require.NoError(t, err)
	redeemed, err := repo.Redeem(promotion.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), redeemed.Counter)

	byRatio, err := repo.FindByDiscountRatio(50)
	require.NoError(t, err)
	require.Len(t, byRatio, 1)
	assert.Equal(t, *redeemed, byRatio[0])

	byName, err := repo.FindByName("20%OFF")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, promotion.ID, byName[0].ID)

	require.NoError(t, repo.Delete(promotion))
	found, err := repo.Find(1)
	require.NoError(t, err)
	assert.Nil(t, found)
}
