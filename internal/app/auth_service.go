package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/platform/auth"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time check that AuthService implements ports.AuthService.
var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements ports.AuthService: credential verification and the
// access/refresh token lifecycle. Unknown usernames and wrong passwords
// produce the same error so responses do not reveal which part failed.
type AuthService struct {
	users  ports.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthService creates an AuthService over the user repository and the
// platform auth primitives.
func NewAuthService(users ports.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies the credentials and returns a fresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, error) {
	s.logger.InfoContext(ctx, "user login", slog.String("username", username))

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, unauthorized("invalid credentials")
		}
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "Login"),
			slog.String("username", username),
			slog.Any("error", err),
		)
		return nil, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		s.logger.InfoContext(ctx, "login rejected", slog.String("username", username))
		return nil, unauthorized("invalid credentials")
	}

	return s.tokenPair(ctx, u)
}

// Refresh exchanges a valid refresh token for a fresh token pair. The subject
// user must still exist; deleted accounts cannot renew their session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, error) {
	s.logger.InfoContext(ctx, "refreshing token pair")

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.InfoContext(ctx, "refresh rejected", slog.Any("error", err))
		return nil, unauthorized("invalid refresh token")
	}

	u, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, unauthorized("unknown subject")
		}
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "Refresh"),
			slog.Int64("user_id", claims.UserID),
			slog.Any("error", err),
		)
		return nil, err
	}

	return s.tokenPair(ctx, u)
}

// tokenPair mints the access/refresh pair for the user.
func (s *AuthService) tokenPair(ctx context.Context, u *user.User) (*ports.TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate access token",
			slog.Int64("user_id", u.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("generating access token: %w", err)
	}

	refresh, err := s.tokens.GenerateRefreshToken(u.ID, u.Username)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to generate refresh token",
			slog.Int64("user_id", u.ID),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}

	return &ports.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.tokens.AccessTokenTTL(),
	}, nil
}
