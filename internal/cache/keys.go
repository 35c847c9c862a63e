// internal/cache/keys.go
package cache

import (
	"github.com/google/uuid"
)

// Key is a cache key drawn from a closed set of kinds. Handlers never build
// key strings by hand; they go through these constructors.
type Key string

const (
	KeyProducts   Key = "products"
	KeyCategories Key = "categories"
	KeyInventory  Key = "inventory"
)

func CategoryKey(id uuid.UUID) Key {
	return Key("category:" + id.String())
}

func InventoryKey(id uuid.UUID) Key {
	return Key("inventory:" + id.String())
}

func TokenKey(token string) Key {
	return Key("jwt:" + token)
}
