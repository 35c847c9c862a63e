// internal/services/product_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/database"
	"github.com/stocklane/catalog-admin/internal/models"
	"github.com/stocklane/catalog-admin/internal/utils"
)

var ErrProductNotFound = errors.New("Product not found")

type ProductService struct {
	db    *gorm.DB
	cache cache.Store
}

type ProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryIDs []string `json:"categoryIds" validate:"omitempty,dive,uuid"`
}

func NewProductService(db *gorm.DB, store cache.Store) *ProductService {
	return &ProductService{
		db:    db,
		cache: store,
	}
}

func (s *ProductService) List(ctx context.Context) (json.RawMessage, error) {
	if raw, ok := s.cache.Get(ctx, cache.KeyProducts); ok {
		return json.RawMessage(raw), nil
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Preload("Categories").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return nil, fmt.Errorf("failed to encode products: %w", err)
	}

	s.cache.Set(ctx, cache.KeyProducts, string(payload), cache.DefaultTTL)
	return payload, nil
}

func (s *ProductService) Create(ctx context.Context, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		if len(categories) > 0 {
			if err := tx.Model(product).Association("Categories").Append(&categories); err != nil {
				return fmt.Errorf("failed to link categories: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyProducts)
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *ProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	categories, err := s.resolveCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"price":       req.Price,
			"stock":       req.Stock,
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update product: %w", err)
		}
		if err := tx.Model(&product).Association("Categories").Replace(&categories); err != nil {
			return fmt.Errorf("failed to relink categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyProducts)
	return &product, nil
}

// Delete removes the product, pulls it out of every category's product set
// and deletes its inventory record, keeping inventory one-to-one.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to fetch product: %w", err)
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			return fmt.Errorf("failed to unlink categories: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Inventory{}).Error; err != nil {
			return fmt.Errorf("failed to delete inventory: %w", err)
		}
		if err := tx.Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Delete(ctx, cache.KeyProducts, cache.KeyInventory)
	return nil
}

func (s *ProductService) resolveCategories(ctx context.Context, ids []string) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("Invalid category IDs")
		}
		parsed = append(parsed, id)
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Where("id IN ?", parsed).Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	if len(categories) != len(parsed) {
		return nil, errors.New("Invalid category IDs")
	}
	return categories, nil
}
