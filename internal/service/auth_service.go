package service

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/aqarhub/aqar-hub-api/internal/models"
	appErrors "github.com/aqarhub/aqar-hub-api/pkg/errors"
)

type authUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type authSessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindUserByToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// AuthConfig defines configuration for the session lifecycle.
type AuthConfig struct {
	SessionLifetime time.Duration
}

// AuthService issues, verifies and revokes bearer sessions.
type AuthService struct {
	users     authUserRepository
	sessions  authSessionRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	clock     func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, sessions authSessionRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.SessionLifetime <= 0 {
		config.SessionLifetime = 24 * time.Hour
	}
	return &AuthService{
		users:     users,
		sessions:  sessions,
		validator: validate,
		logger:    logger,
		config:    config,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates a user and issues a new bearer session. Emails are
// stored lowercase, so the lookup normalizes the caller's casing.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if user.Status != models.StatusActive {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}

	token, err := s.generateSessionToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate session token")
	}

	now := s.clock()
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: now.Add(s.config.SessionLifetime),
		CreatedAt: now,
		IPAddress: req.IP,
		UserAgent: req.UserAgent,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist session")
	}

	s.logger.Info("session issued",
		zap.String("user_id", user.ID),
		zap.String("role", string(user.Role)),
		zap.Time("expires_at", session.ExpiresAt))

	return &models.LoginResponse{
		User:      user.Sanitized(),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Verify resolves a bearer token to its user. Expired or unknown tokens
// are rejected; verification never mutates session state.
func (s *AuthService) Verify(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "missing session token")
	}

	user, err := s.sessions.FindUserByToken(ctx, token, s.clock())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session is invalid or expired")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify session")
	}

	if user.Status != models.StatusActive {
		return nil, appErrors.Clone(appErrors.ErrInactiveAccount, "account is inactive")
	}

	sanitized := user.Sanitized()
	return &sanitized, nil
}

// Logout revokes the session for the given token. Revoking a token that
// no longer exists succeeds; logout is idempotent.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return appErrors.Clone(appErrors.ErrUnauthorized, "missing session token")
	}

	if err := s.sessions.DeleteByToken(ctx, token); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to revoke session")
	}
	return nil
}

// CleanExpiredSessions removes sessions past their expiry and reports
// how many were purged. It is invoked by the periodic cleanup job.
func (s *AuthService) CleanExpiredSessions(ctx context.Context) (int64, error) {
	purged, err := s.sessions.DeleteExpired(ctx, s.clock())
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to purge expired sessions")
	}
	if purged > 0 {
		s.logger.Info("expired sessions purged", zap.Int64("count", purged))
	}
	return purged, nil
}

func (s *AuthService) generateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
