// internal/services/import_reconciler.go
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/models"
)

// ReconcileResult reports which entities a row brought into existence.
type ReconcileResult struct {
	CategoryCreated  bool
	ProductCreated   bool
	InventoryCreated bool
}

// ReconciliationError is a row-scoped storage failure. The coordinator counts
// the row as skipped and continues with the rest of the batch.
type ReconciliationError struct {
	Step string
	Err  error
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed at %s: %v", e.Step, e.Err)
}

func (e *ReconciliationError) Unwrap() error {
	return e.Err
}

// reconcileRecord turns one validated row into consistent Category, Product
// and Inventory state. Lookups are by name, so re-importing the same batch
// creates nothing new; existing entities are referenced, never updated.
//
// Concurrent imports can race the find-or-create on the same new name and
// create duplicates. There is no uniqueness constraint on names and no batch
// lock; that limitation is accepted.
//
// The caller runs this inside a transaction, so a category create, the
// product create with its category link, and the inventory create commit or
// roll back together.
func reconcileRecord(tx *gorm.DB, record *ImportRecord) (*ReconcileResult, error) {
	result := &ReconcileResult{}

	var category models.Category
	err := tx.Where("name = ?", record.CategoryName).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{
			Name:        record.CategoryName,
			Description: record.CategoryDescription,
		}
		if err := tx.Create(&category).Error; err != nil {
			return nil, &ReconciliationError{Step: "category create", Err: err}
		}
		result.CategoryCreated = true
	} else if err != nil {
		return nil, &ReconciliationError{Step: "category lookup", Err: err}
	}

	var product models.Product
	err = tx.Where("name = ?", record.ProductName).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		product = models.Product{
			Name:        record.ProductName,
			Description: record.ProductDescription,
			Price:       record.Price,
			Stock:       record.Available,
		}
		if err := tx.Create(&product).Error; err != nil {
			return nil, &ReconciliationError{Step: "product create", Err: err}
		}
		// The join row mirrors the relation on both sides at once.
		if err := tx.Model(&product).Association("Categories").Append(&category); err != nil {
			return nil, &ReconciliationError{Step: "category link", Err: err}
		}
		result.ProductCreated = true
	} else if err != nil {
		return nil, &ReconciliationError{Step: "product lookup", Err: err}
	}

	var inventory models.Inventory
	err = tx.Where("product_id = ?", product.ID).First(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		inventory = models.Inventory{
			ProductID: product.ID,
			Available: record.Available,
			Sold:      record.Sold,
		}
		if err := tx.Create(&inventory).Error; err != nil {
			return nil, &ReconciliationError{Step: "inventory create", Err: err}
		}
		result.InventoryCreated = true
	} else if err != nil {
		return nil, &ReconciliationError{Step: "inventory lookup", Err: err}
	}
	// An existing inventory record is left untouched; creation is skipped,
	// never rejected.

	return result, nil
}
