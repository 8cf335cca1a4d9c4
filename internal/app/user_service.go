package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/platform/auth"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService implements ports.UserService. It owns account registration,
// profile updates, and the password policy; plaintext passwords never leave
// this service un-hashed.
type UserService struct {
	users  ports.UserRepository
	hasher *auth.PasswordHasher
	logger *slog.Logger
	now    func() time.Time
}

// NewUserService creates a UserService. The injected time source stamps
// created and updated entities; pass time.Now outside tests.
func NewUserService(users ports.UserRepository, hasher *auth.PasswordHasher, logger *slog.Logger, now func() time.Time) *UserService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if now == nil {
		now = time.Now
	}
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
		now:    now,
	}
}

// ListUsers returns all active users ordered by creation time ascending.
func (s *UserService) ListUsers(ctx context.Context) ([]user.User, error) {
	s.logger.InfoContext(ctx, "listing users")

	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list users",
			slog.String("operation", "ListUsers"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return users, nil
}

// GetUser returns a single active user by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*user.User, error) {
	s.logger.InfoContext(ctx, "fetching user", slog.Int64("id", id))

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "GetUser"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return u, nil
}

// GetUserByUsername returns a single active user by exact username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*user.User, error) {
	s.logger.InfoContext(ctx, "fetching user by username", slog.String("username", username))

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "GetUserByUsername"),
			slog.String("username", username),
			slog.Any("error", err),
		)
		return nil, err
	}

	return u, nil
}

// CreateUser registers a new account. The password is policy-checked and
// bcrypt-hashed before the entity is built.
func (s *UserService) CreateUser(ctx context.Context, create ports.UserCreate) (*user.User, error) {
	s.logger.InfoContext(ctx, "creating user", slog.String("username", create.Username))

	if err := user.ValidatePassword(create.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(create.Password)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hash password",
			slog.String("operation", "CreateUser"),
			slog.Any("error", err),
		)
		return nil, err
	}

	u := &user.User{
		Username:     strings.TrimSpace(create.Username),
		Email:        strings.TrimSpace(create.Email),
		FullName:     create.FullName,
		PasswordHash: hash,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsWithUsername(ctx, u.Username, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check username uniqueness",
			slog.String("operation", "CreateUser"),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("username", u.Username)
	}

	taken, err = s.users.ExistsWithEmail(ctx, u.Email, 0)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check email uniqueness",
			slog.String("operation", "CreateUser"),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("email", u.Email)
	}

	now := s.now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	created, err := s.users.Create(ctx, u)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create user",
			slog.String("operation", "CreateUser"),
			slog.Any("error", err),
		)
		return nil, err
	}

	return created, nil
}

// UpdateUser applies the supplied fields to an existing user and returns the
// updated entity. A supplied password is policy-checked and re-hashed.
func (s *UserService) UpdateUser(ctx context.Context, id int64, update ports.UserUpdate) (*user.User, error) {
	s.logger.InfoContext(ctx, "updating user", slog.Int64("id", id))

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch user",
			slog.String("operation", "UpdateUser"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if update.Email != nil {
		u.Email = strings.TrimSpace(*update.Email)
	}
	if update.FullName != nil {
		u.FullName = *update.FullName
	}
	if update.Password != nil {
		if err := user.ValidatePassword(*update.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to hash password",
				slog.String("operation", "UpdateUser"),
				slog.Int64("id", id),
				slog.Any("error", err),
			)
			return nil, err
		}
		u.PasswordHash = hash
	}

	if err := u.Validate(); err != nil {
		return nil, err
	}

	taken, err := s.users.ExistsWithEmail(ctx, u.Email, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to check email uniqueness",
			slog.String("operation", "UpdateUser"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	if taken {
		return nil, conflictf("email", u.Email)
	}

	u.UpdatedAt = s.now().UTC()

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update user",
			slog.String("operation", "UpdateUser"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	return updated, nil
}

// DeleteUser soft-deletes the user. Assigned tasks keep their assignee
// reference; it is a weak reference used for filtering and display only.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	s.logger.InfoContext(ctx, "deleting user", slog.Int64("id", id))

	if err := s.users.SoftDelete(ctx, id); err != nil {
		s.logger.ErrorContext(ctx, "failed to delete user",
			slog.String("operation", "DeleteUser"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}

	return nil
}
