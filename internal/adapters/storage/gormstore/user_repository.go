package gormstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository persists user accounts via GORM.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository over the given connection.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a single active user by ID.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).
		First(&rec, "id = ? AND deleted_at IS NULL", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("user", id)
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return rec.toDomain(), nil
}

// FindByUsername returns a single active user by exact username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	var rec userRecord
	err := r.db.WithContext(ctx).
		First(&rec, "username = ? AND deleted_at IS NULL", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("finding user by username: %w", err)
	}
	return rec.toDomain(), nil
}

// List returns all active users ordered by creation time ascending.
func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	var recs []userRecord
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Order("created_at ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	users := make([]user.User, 0, len(recs))
	for i := range recs {
		users = append(users, *recs[i].toDomain())
	}
	return users, nil
}

// Create persists a new user and returns it with the assigned ID.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	rec := userRecordFrom(u)
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if isDuplicate(err) {
			return nil, conflict("username or email", u.Username)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return rec.toDomain(), nil
}

// Update persists changes to an existing active user.
func (r *UserRepository) Update(ctx context.Context, u *user.User) (*user.User, error) {
	rec := userRecordFrom(u)
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ? AND deleted_at IS NULL", rec.ID).
		Updates(map[string]any{
			"email":         rec.Email,
			"full_name":     rec.FullName,
			"password_hash": rec.PasswordHash,
			"updated_at":    rec.UpdatedAt,
		})
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return nil, conflict("email", u.Email)
		}
		return nil, fmt.Errorf("updating user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, notFound("user", rec.ID)
	}
	return rec.toDomain(), nil
}

// SoftDelete marks the user deleted without removing the row.
func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{
			"deleted_at": now,
			"updated_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("deleting user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound("user", id)
	}
	return nil
}

// ExistsWithUsername reports whether an active user other than excludeID
// holds the username.
func (r *UserRepository) ExistsWithUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("username = ? AND deleted_at IS NULL", username)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking username: %w", err)
	}
	return count > 0, nil
}

// ExistsWithEmail reports whether an active user other than excludeID holds
// the email.
func (r *UserRepository) ExistsWithEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&userRecord{}).
		Where("email = ? AND deleted_at IS NULL", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return count > 0, nil
}
