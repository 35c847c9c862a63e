// internal/services/inventory_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/models"
	"github.com/stocklane/catalog-admin/internal/utils"
)

var (
	ErrInventoryNotFound = errors.New("Inventory not found")
	ErrInventoryExists   = errors.New("Inventory already exists for this product")
)

type InventoryService struct {
	db    *gorm.DB
	cache cache.Store
}

type InventoryRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Available int    `json:"available" validate:"gte=0"`
	Sold      int    `json:"sold" validate:"gte=0"`
}

func NewInventoryService(db *gorm.DB, store cache.Store) *InventoryService {
	return &InventoryService{
		db:    db,
		cache: store,
	}
}

func (s *InventoryService) List(ctx context.Context) (json.RawMessage, error) {
	if raw, ok := s.cache.Get(ctx, cache.KeyInventory); ok {
		return json.RawMessage(raw), nil
	}

	var records []models.Inventory
	if err := s.db.WithContext(ctx).Preload("Product").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch inventory: %w", err)
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory: %w", err)
	}

	s.cache.Set(ctx, cache.KeyInventory, string(payload), cache.DefaultTTL)
	return payload, nil
}

func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	key := cache.InventoryKey(id)
	if raw, ok := s.cache.Get(ctx, key); ok {
		return json.RawMessage(raw), nil
	}

	var record models.Inventory
	if err := s.db.WithContext(ctx).Preload("Product").First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory record: %w", err)
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode inventory record: %w", err)
	}

	s.cache.Set(ctx, key, string(payload), cache.DefaultTTL)
	return payload, nil
}

// Create enforces the one-to-one invariant: a second record for the same
// product is rejected outright.
func (s *InventoryService) Create(ctx context.Context, req *InventoryRequest) (*models.Inventory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	var existing models.Inventory
	err = s.db.WithContext(ctx).Where("product_id = ?", productID).First(&existing).Error
	if err == nil {
		return nil, ErrInventoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing inventory: %w", err)
	}

	record := &models.Inventory{
		ProductID: productID,
		Available: req.Available,
		Sold:      req.Sold,
	}
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to create inventory record: %w", err)
	}

	s.cache.Delete(ctx, cache.KeyInventory, cache.InventoryKey(record.ID))
	return record, nil
}

func (s *InventoryService) Update(ctx context.Context, id uuid.UUID, req *InventoryRequest) (*models.Inventory, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, ErrProductNotFound
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	// Moving the record onto a product that already has one would break the
	// one-to-one relation.
	var conflicting models.Inventory
	err = s.db.WithContext(ctx).Where("product_id = ? AND id <> ?", productID, id).First(&conflicting).Error
	if err == nil {
		return nil, ErrInventoryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing inventory: %w", err)
	}

	var record models.Inventory
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch inventory record: %w", err)
	}

	updates := map[string]interface{}{
		"product_id": productID,
		"available":  req.Available,
		"sold":       req.Sold,
	}
	if err := s.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update inventory record: %w", err)
	}

	s.cache.Delete(ctx, cache.KeyInventory, cache.InventoryKey(id))
	return &record, nil
}

func (s *InventoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var record models.Inventory
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInventoryNotFound
		}
		return fmt.Errorf("failed to fetch inventory record: %w", err)
	}

	if err := s.db.WithContext(ctx).Delete(&record).Error; err != nil {
		return fmt.Errorf("failed to delete inventory record: %w", err)
	}

	s.cache.Delete(ctx, cache.KeyInventory, cache.InventoryKey(id))
	return nil
}
