// internal/middleware/auth.go
package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/models"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type cachedSession struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AuthRequired validates the bearer token. Verified tokens are cached in
// Redis so repeat requests skip signature verification; a cache failure just
// means the JWT is verified again.
func AuthRequired(store cache.Store, tokenCacheTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}
		token := parts[1]

		if store != nil {
			if raw, ok := store.Get(c.Request.Context(), cache.TokenKey(token)); ok {
				var session cachedSession
				if err := json.Unmarshal([]byte(raw), &session); err == nil {
					c.Set("user_id", session.UserID)
					c.Set("role", session.Role)
					c.Next()
					return
				}
			}
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		// Tokens carry roles signed before the casing was settled.
		role, err := models.ParseRole(claims.Role)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", string(role))

		if store != nil {
			if raw, err := json.Marshal(cachedSession{UserID: claims.UserID, Role: string(role)}); err == nil {
				store.Set(c.Request.Context(), cache.TokenKey(token), string(raw), tokenCacheTTL)
			}
		}
		c.Next()
	}
}

// MasterRequired gates elevated operations. AuthRequired must run first.
func MasterRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetRoleFromContext(c)
		if !ok || role != string(models.RoleMaster) {
			utils.ForbiddenResponse(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
