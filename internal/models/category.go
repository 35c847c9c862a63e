// internal/models/category.go
package models

type Category struct {
	BaseModel
	// Name is the natural lookup key for the import pipeline. It is
	// intentionally not unique at the storage layer; see the reconciler.
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Products    []Product `json:"products,omitempty" gorm:"many2many:product_categories;"`
}
