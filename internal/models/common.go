// internal/models/common.go
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an ID so the same models work on Postgres and the
// sqlite test databases, which have no uuid default.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Role is the closed two-value role enum. Historical data and tokens carry
// inconsistent casing ("Master", "MASTER", ...), so every boundary goes
// through ParseRole and only the canonical lowercase form is stored.
type Role string

const (
	RoleMaster Role = "master"
	RoleAdmin  Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleMaster):
		return RoleMaster, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("invalid role %q", s)
	}
}
