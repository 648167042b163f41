package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/config"
	"github.com/spec-kit/competition-service/internal/domain"
	"github.com/spec-kit/competition-service/internal/repository"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// Credentials identify an account.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// Session is the result of a successful sign-in.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates registration and login flows.
type AuthService struct {
	users       repository.UserRepository
	tokenMgr    *auth.TokenManager
	bcryptCost  int
	adminEmails map[string]struct{}
	validate    *validator.Validate
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	admins := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, email := range cfg.AdminEmails {
		admins[strings.ToLower(email)] = struct{}{}
	}
	return &AuthService{
		users:       users,
		tokenMgr:    auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		bcryptCost:  cfg.BcryptCost,
		adminEmails: admins,
		validate:    newValidator(),
	}
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates an account. Addresses listed in AUTH_ADMIN_EMAILS become admins.
func (s *AuthService) Register(ctx context.Context, creds Credentials) (*Session, error) {
	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if err := validateStruct(s.validate, creds); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, creds.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": creds.Email})
	} else if !errors.Is(err, errNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	_, admin := s.adminEmails[creds.Email]
	user := &domain.User{
		Email:        creds.Email,
		PasswordHash: hash,
		IsAdmin:      admin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.issue(user)
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, apperrors.NewValidationError("invalid input", map[string]any{"credentials": "required"})
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, creds.Password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.IsAdmin)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}
