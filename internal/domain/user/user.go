package user

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
)

// Password length bounds. The upper bound is bcrypt's 72-byte input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents an account that tasks can be assigned to.
// PasswordHash holds the bcrypt hash, never the plaintext; the logging layer
// additionally redacts the field by name.
type User struct {
	ID           int64
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Deleted reports whether the user is soft-deleted.
func (u *User) Deleted() bool {
	return u.DeletedAt != nil
}

// Validate checks business rules for the User entity.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with per-field details,
// or nil if all rules pass. FullName is optional.
func (u *User) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(u.Username) == "" {
		fields["username"] = domain.MsgRequired
	}
	if strings.TrimSpace(u.Email) == "" {
		fields["email"] = domain.MsgRequired
	} else if _, err := mail.ParseAddress(u.Email); err != nil {
		fields["email"] = "must be a valid address"
	}
	if u.PasswordHash == "" {
		fields["password_hash"] = domain.MsgRequired
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// ValidatePassword checks the plaintext password policy before hashing.
// Returns a *domain.ValidationError when the password is out of bounds.
func ValidatePassword(password string) error {
	var msg string
	switch {
	case len(password) < MinPasswordLength:
		msg = fmt.Sprintf("must be at least %d characters", MinPasswordLength)
	case len(password) > MaxPasswordLength:
		msg = fmt.Sprintf("must be at most %d characters", MaxPasswordLength)
	default:
		return nil
	}
	return &domain.ValidationError{Fields: map[string]string{"password": msg}}
}
