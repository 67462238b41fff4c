package identity

import (
	"strings"
	"time"

	"github.com/billing/backend/internal/domain/identity"
	"github.com/billing/backend/internal/domain/shared"
	"github.com/billing/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult carries the issued token and the authenticated user.
type LoginResult struct {
	AccessToken string        `json:"access_token"`
	ExpiresAt   time.Time     `json:"expires_at"`
	User        identity.User `json:"user"`
}

// AuthService handles operator authentication
type AuthService struct {
	users      identity.UserStore
	jwtService *auth.JWTService
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(users identity.UserStore, jwtService *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login authenticates an operator by email and password and issues an access
// token. Unknown users and wrong passwords return the same error.
func (s *AuthService) Login(req LoginRequest) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, ok := s.users.FindByEmail(email)
	if !ok {
		s.logger.Warn("login attempt for unknown user", zap.String("email", email))
		return nil, shared.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login attempt with wrong password", zap.String("email", email))
		return nil, shared.ErrUnauthorized
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		s.logger.Error("failed to sign access token", zap.Error(err))
		return nil, err
	}

	s.logger.Info("operator logged in",
		zap.String("email", email),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        *user,
	}, nil
}
