// internal/services/inventory_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/models"
)

type InventoryServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	cache *fakeCache
	svc   *InventoryService
	ctx   context.Context
}

func (s *InventoryServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.cache = newFakeCache()
	s.svc = NewInventoryService(s.db, s.cache)
	s.ctx = context.Background()
}

func (s *InventoryServiceTestSuite) createProduct(name string) *models.Product {
	product := &models.Product{Name: name, Description: "test product", Price: 10}
	s.Require().NoError(s.db.Create(product).Error)
	return product
}

func (s *InventoryServiceTestSuite) TestCreate() {
	product := s.createProduct("Widget")

	record, err := s.svc.Create(s.ctx, &InventoryRequest{
		ProductID: product.ID.String(),
		Available: 12,
		Sold:      3,
	})
	s.Require().NoError(err)
	s.Equal(product.ID, record.ProductID)
	s.Equal(12, record.Available)
	s.Equal(3, record.Sold)

	s.Equal(1, s.cache.deleteCount(cache.KeyInventory))
}

func (s *InventoryServiceTestSuite) TestCreateRejectsSecondRecord() {
	product := s.createProduct("Widget")

	_, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: product.ID.String(), Available: 12})
	s.Require().NoError(err)

	_, err = s.svc.Create(s.ctx, &InventoryRequest{ProductID: product.ID.String(), Available: 1})
	s.Require().ErrorIs(err, ErrInventoryExists)

	var count int64
	s.db.Model(&models.Inventory{}).Count(&count)
	s.EqualValues(1, count)
}

func (s *InventoryServiceTestSuite) TestCreateRejectsUnknownProduct() {
	_, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: uuid.NewString(), Available: 1})
	s.Require().ErrorIs(err, ErrProductNotFound)
}

func (s *InventoryServiceTestSuite) TestUpdateRejectsOccupiedProduct() {
	first := s.createProduct("Widget")
	second := s.createProduct("Gadget")

	_, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: first.ID.String(), Available: 12})
	s.Require().NoError(err)
	record, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: second.ID.String(), Available: 5})
	s.Require().NoError(err)

	// Moving the second record onto the first product must be refused.
	_, err = s.svc.Update(s.ctx, record.ID, &InventoryRequest{ProductID: first.ID.String(), Available: 5})
	s.Require().ErrorIs(err, ErrInventoryExists)
}

func (s *InventoryServiceTestSuite) TestUpdateSameProduct() {
	product := s.createProduct("Widget")

	record, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: product.ID.String(), Available: 12, Sold: 3})
	s.Require().NoError(err)

	updated, err := s.svc.Update(s.ctx, record.ID, &InventoryRequest{
		ProductID: product.ID.String(),
		Available: 9,
		Sold:      6,
	})
	s.Require().NoError(err)
	s.Equal(9, updated.Available)
	s.Equal(6, updated.Sold)
}

func (s *InventoryServiceTestSuite) TestGetReadsThroughCache() {
	product := s.createProduct("Widget")
	record, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: product.ID.String(), Available: 12})
	s.Require().NoError(err)

	payload, err := s.svc.Get(s.ctx, record.ID)
	s.Require().NoError(err)

	cached, ok := s.cache.Get(s.ctx, cache.InventoryKey(record.ID))
	s.Require().True(ok)
	s.JSONEq(string(payload), cached)
}

func (s *InventoryServiceTestSuite) TestGetMissing() {
	_, err := s.svc.Get(s.ctx, uuid.New())
	s.Require().ErrorIs(err, ErrInventoryNotFound)
}

func (s *InventoryServiceTestSuite) TestDelete() {
	product := s.createProduct("Widget")
	record, err := s.svc.Create(s.ctx, &InventoryRequest{ProductID: product.ID.String(), Available: 12})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.Delete(s.ctx, record.ID))

	var count int64
	s.db.Model(&models.Inventory{}).Count(&count)
	s.EqualValues(0, count)
}

func TestInventoryServiceSuite(t *testing.T) {
	suite.Run(t, new(InventoryServiceTestSuite))
}
