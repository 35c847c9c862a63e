// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:255;not null;index"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	// Stock is the product's own counter, distinct from Inventory.Available.
	Stock      int        `json:"stock" gorm:"not null;default:0"`
	Categories []Category `json:"categories,omitempty" gorm:"many2many:product_categories;"`
}
