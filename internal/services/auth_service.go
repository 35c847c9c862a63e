// internal/services/auth_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/config"
	"github.com/stocklane/catalog-admin/internal/models"
	"github.com/stocklane/catalog-admin/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserExists         = errors.New("User with this email already exists")
	ErrUserNotFound       = errors.New("User not found")
)

type AuthService struct {
	db    *gorm.DB
	cache cache.Store
	cfg   *config.Config
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(db *gorm.DB, store cache.Store, cfg *config.Config) *AuthService {
	return &AuthService{
		db:    db,
		cache: store,
		cfg:   cfg,
	}
}

func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	// Prime the token cache so the first authenticated request skips
	// signature verification. Best-effort.
	session, err := json.Marshal(map[string]string{
		"user_id": user.ID.String(),
		"role":    string(user.Role),
	})
	if err == nil {
		s.cache.Set(ctx, cache.TokenKey(token), string(session),
			time.Duration(s.cfg.JWT.TokenCacheTTL)*time.Second)
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// Signup creates a new panel user. Only an authenticated Master reaches this
// path; the role string is normalized before it is stored.
func (s *AuthService) Signup(ctx context.Context, req *SignupRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.db.WithContext(ctx).Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := &models.User{
		Email: req.Email,
		Role:  role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) {
	if token != "" {
		s.cache.Delete(ctx, cache.TokenKey(token))
	}
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &user, nil
}
