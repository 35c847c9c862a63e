// internal/services/product_service_test.go
package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/models"
)

type ProductServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	cache *fakeCache
	svc   *ProductService
	ctx   context.Context
}

func (s *ProductServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.cache = newFakeCache()
	s.svc = NewProductService(s.db, s.cache)
	s.ctx = context.Background()
}

func (s *ProductServiceTestSuite) createCategory(name string) *models.Category {
	category := &models.Category{Name: name, Description: "test category"}
	s.Require().NoError(s.db.Create(category).Error)
	return category
}

func (s *ProductServiceTestSuite) TestCreateLinksCategories() {
	category := s.createCategory("Electronics")

	product, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       9.5,
		Stock:       4,
		CategoryIDs: []string{category.ID.String()},
	})
	s.Require().NoError(err)

	// The relation must be visible from the category side as well.
	var reloaded models.Category
	s.Require().NoError(s.db.Preload("Products").First(&reloaded, "id = ?", category.ID).Error)
	s.Require().Len(reloaded.Products, 1)
	s.Equal(product.ID, reloaded.Products[0].ID)

	s.Equal(1, s.cache.deleteCount(cache.KeyProducts))
}

func (s *ProductServiceTestSuite) TestCreateRejectsUnknownCategory() {
	_, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       9.5,
		CategoryIDs: []string{"5b8acf63-98a5-4f34-9f3e-9e2a2f9ad2a1"},
	})
	s.Require().EqualError(err, "Invalid category IDs")
}

func (s *ProductServiceTestSuite) TestDeleteCascades() {
	category := s.createCategory("Electronics")
	product, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       9.5,
		CategoryIDs: []string{category.ID.String()},
	})
	s.Require().NoError(err)

	inventory := &models.Inventory{ProductID: product.ID, Available: 5, Sold: 1}
	s.Require().NoError(s.db.Create(inventory).Error)

	s.Require().NoError(s.svc.Delete(s.ctx, product.ID))

	// The product is gone, the category no longer references it, and the
	// inventory record went with it.
	var count int64
	s.db.Model(&models.Product{}).Count(&count)
	s.EqualValues(0, count)

	var reloaded models.Category
	s.Require().NoError(s.db.Preload("Products").First(&reloaded, "id = ?", category.ID).Error)
	s.Empty(reloaded.Products)

	s.db.Model(&models.Inventory{}).Count(&count)
	s.EqualValues(0, count)

	s.Equal(1, s.cache.deleteCount(cache.KeyInventory))
}

func (s *ProductServiceTestSuite) TestDeleteMissingProduct() {
	err := s.svc.Delete(s.ctx, uuid.New())
	s.Require().ErrorIs(err, ErrProductNotFound)
}

func (s *ProductServiceTestSuite) TestListReadsThroughCache() {
	s.createCategoryProduct()

	// Cold read fills the cache.
	payload, err := s.svc.List(s.ctx)
	s.Require().NoError(err)

	cached, ok := s.cache.Get(s.ctx, cache.KeyProducts)
	s.Require().True(ok)
	s.JSONEq(string(payload), cached)

	// A warm read is served from the cache verbatim.
	s.cache.Set(s.ctx, cache.KeyProducts, `[{"name":"cached"}]`, 0)
	payload, err = s.svc.List(s.ctx)
	s.Require().NoError(err)
	s.Equal(`[{"name":"cached"}]`, string(payload))
}

func (s *ProductServiceTestSuite) createCategoryProduct() {
	category := s.createCategory("Electronics")
	_, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       9.5,
		CategoryIDs: []string{category.ID.String()},
	})
	s.Require().NoError(err)
}

func (s *ProductServiceTestSuite) TestUpdateRelinksCategories() {
	first := s.createCategory("Electronics")
	second := s.createCategory("Office")

	product, err := s.svc.Create(s.ctx, &ProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       9.5,
		CategoryIDs: []string{first.ID.String()},
	})
	s.Require().NoError(err)

	_, err = s.svc.Update(s.ctx, product.ID, &ProductRequest{
		Name:        "Widget",
		Description: "A fine widget",
		Price:       12,
		CategoryIDs: []string{second.ID.String()},
	})
	s.Require().NoError(err)

	var oldSide models.Category
	s.Require().NoError(s.db.Preload("Products").First(&oldSide, "id = ?", first.ID).Error)
	s.Empty(oldSide.Products)

	var newSide models.Category
	s.Require().NoError(s.db.Preload("Products").First(&newSide, "id = ?", second.ID).Error)
	s.Require().Len(newSide.Products, 1)
	s.Equal(product.ID, newSide.Products[0].ID)
}

func (s *ProductServiceTestSuite) TestListPayloadShape() {
	s.createCategoryProduct()

	payload, err := s.svc.List(s.ctx)
	s.Require().NoError(err)

	var decoded []map[string]interface{}
	s.Require().NoError(json.Unmarshal(payload, &decoded))
	s.Require().Len(decoded, 1)
	s.Equal("Widget", decoded[0]["name"])
}

func TestProductServiceSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}
