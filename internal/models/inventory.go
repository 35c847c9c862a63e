// internal/models/inventory.go
package models

import (
	"github.com/google/uuid"
)

// Inventory is one-to-one with Product. The unique index backs the invariant;
// writers still look up before creating so a duplicate is skipped, not raised.
type Inventory struct {
	BaseModel
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;not null;uniqueIndex"`
	Available int       `json:"available" gorm:"not null"`
	Sold      int       `json:"sold" gorm:"not null"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
