// internal/handlers/auth.go
package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stocklane/catalog-admin/internal/services"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type AuthHandler struct {
	authService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, "Invalid credentials")
			return
		}
		if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
			utils.BadRequestResponse(c, validationErrors[0].Message)
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, resp)
}

// POST /auth/signup (Master only)
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}

	user, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			utils.BadRequestResponse(c, err.Error())
		case strings.HasPrefix(err.Error(), "invalid role"):
			utils.BadRequestResponse(c, "Invalid role")
		default:
			if validationErrors := utils.GetValidationErrors(errors.Unwrap(err)); len(validationErrors) > 0 {
				utils.BadRequestResponse(c, validationErrors[0].Message)
				return
			}
			utils.ServerErrorResponse(c)
		}
		return
	}

	utils.CreatedResponse(c, user)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	h.authService.Logout(c.Request.Context(), token)
	utils.SuccessResponse(c, gin.H{"message": "Logged out"})
}

// GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	rawID, ok := utils.GetUserIDFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "User not found")
			return
		}
		utils.ServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, user)
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
