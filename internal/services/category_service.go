// internal/services/category_service.go
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

var ErrCategoryNotFound = errors.New("Category not found")

type CategoryService struct {
	db    *gorm.DB
	cache cache.Store
}

type CategoryRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description" validate:"required"`
	ProductIDs  []string `json:"productIds" validate:"omitempty,dive,uuid"`
}

func NewCategoryService(db *gorm.DB, store cache.Store) *CategoryService {
	return &CategoryService{
		db:    db,
		cache: store,
	}
}

// List serves the categories list through the cache. A cache failure is a
// miss; the database stays authoritative.
func (s *CategoryService) List(ctx context.Context) (json.RawMessage, error) {
	if raw, ok := s.cache.Get(ctx, cache.KeyCategories); ok {
		return json.RawMessage(raw), nil
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Preload("Products").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	payload, err := json.Marshal(categories)
	if err != nil {
		return nil, fmt.Errorf("failed to encode categories: %w", err)
	}

	s.cache.Set(ctx, cache.KeyCategories, string(payload), cache.DefaultTTL)
	return payload, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (json.RawMessage, error) {
	key := cache.CategoryKey(id)
	if raw, ok := s.cache.Get(ctx, key); ok {
		return json.RawMessage(raw), nil
	}

	var category models.Category
	if err := s.db.WithContext(ctx).Preload("Products").First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	payload, err := json.Marshal(category)
	if err != nil {
		return nil, fmt.Errorf("failed to encode category: %w", err)
	}

	s.cache.Set(ctx, key, string(payload), cache.DefaultTTL)
	return payload, nil
}

func (s *CategoryService) Create(ctx context.Context, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Create(category).Error; err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		if len(products) > 0 {
			if err := tx.Model(category).Association("Products").Append(&products); err != nil {
				return fmt.Errorf("failed to link products: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyCategories, cache.CategoryKey(category.ID))
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *CategoryRequest) (*models.Category, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to fetch category: %w", err)
	}

	products, err := s.resolveProducts(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	err = database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
		}
		if err := tx.Model(&category).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		// Replace rewrites the join rows, keeping both sides in step.
		if err := tx.Model(&category).Association("Products").Replace(&products); err != nil {
			return fmt.Errorf("failed to relink products: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Delete(ctx, cache.KeyCategories, cache.CategoryKey(id))
	return &category, nil
}

// Delete removes the category and unlinks it from every product that
// referenced it. Products themselves are never cascade-deleted.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to fetch category: %w", err)
	}

	err := database.WithTransaction(s.db.WithContext(ctx), func(tx *gorm.DB) error {
		if err := tx.Model(&category).Association("Products").Clear(); err != nil {
			return fmt.Errorf("failed to unlink products: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cache.Delete(ctx, cache.KeyCategories, cache.CategoryKey(id))
	return nil
}

func (s *CategoryService) resolveProducts(ctx context.Context, ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, errors.New("Invalid product IDs")
		}
		parsed = append(parsed, id)
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", parsed).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}
	if len(products) != len(parsed) {
		return nil, errors.New("Invalid product IDs")
	}
	return products, nil
}
