// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stocklane/catalog-admin/internal/cache"
	"github.com/stocklane/catalog-admin/internal/config"
	"github.com/stocklane/catalog-admin/internal/models"
	"github.com/stocklane/catalog-admin/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	cache *fakeCache
	svc   *AuthService
	ctx   context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.cache = newFakeCache()

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.AccessTokenTTL = 1
	cfg.JWT.TokenCacheTTL = 60
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	s.svc = NewAuthService(s.db, s.cache, cfg)
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) signup(email, password, role string) *models.User {
	user, err := s.svc.Signup(s.ctx, &SignupRequest{Email: email, Password: password, Role: role})
	s.Require().NoError(err)
	return user
}

func (s *AuthServiceTestSuite) TestSignupNormalizesRole() {
	user := s.signup("admin@example.com", "secret1", "Admin")
	s.Equal(models.RoleAdmin, user.Role)
	s.NotEqual("secret1", user.PasswordHash)
}

func (s *AuthServiceTestSuite) TestSignupRejectsDuplicateEmail() {
	s.signup("admin@example.com", "secret1", "admin")

	_, err := s.svc.Signup(s.ctx, &SignupRequest{
		Email:    "admin@example.com",
		Password: "secret2",
		Role:     "admin",
	})
	s.Require().ErrorIs(err, ErrUserExists)
}

func (s *AuthServiceTestSuite) TestSignupRejectsUnknownRole() {
	_, err := s.svc.Signup(s.ctx, &SignupRequest{
		Email:    "admin@example.com",
		Password: "secret1",
		Role:     "superuser",
	})
	s.Require().Error(err)
}

func (s *AuthServiceTestSuite) TestLogin() {
	user := s.signup("master@example.com", "secret1", "master")

	resp, err := s.svc.Login(s.ctx, &LoginRequest{Email: "master@example.com", Password: "secret1"})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.Equal(user.ID, resp.User.ID)

	claims, err := utils.ValidateJWT(resp.Token)
	s.Require().NoError(err)
	s.Equal(user.ID.String(), claims.UserID)
	s.Equal("master", claims.Role)

	// The session is primed so authenticated requests can skip verification.
	_, ok := s.cache.Get(s.ctx, cache.TokenKey(resp.Token))
	s.True(ok)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	s.signup("master@example.com", "secret1", "master")

	_, err := s.svc.Login(s.ctx, &LoginRequest{Email: "master@example.com", Password: "wrong-1"})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginUnknownEmail() {
	_, err := s.svc.Login(s.ctx, &LoginRequest{Email: "ghost@example.com", Password: "secret1"})
	s.Require().ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLogoutRevokesSession() {
	s.signup("master@example.com", "secret1", "master")

	resp, err := s.svc.Login(s.ctx, &LoginRequest{Email: "master@example.com", Password: "secret1"})
	s.Require().NoError(err)

	s.svc.Logout(s.ctx, resp.Token)

	_, ok := s.cache.Get(s.ctx, cache.TokenKey(resp.Token))
	s.False(ok)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
