package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskboard/internal/domain"
	"github.com/jsamuelsen11/taskboard/internal/domain/user"
	"github.com/jsamuelsen11/taskboard/internal/ports"
)

// Compile-time interface check.
var _ ports.UserRepository = (*UserRepository)(nil)

// UserRepository stores user accounts in a mutex-guarded map.
type UserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*user.User
	nextID int64
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[int64]*user.User)}
}

// FindByID returns a single active user by ID.
func (s *UserRepository) FindByID(_ context.Context, id int64) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.users[id]
	if u == nil || u.Deleted() {
		return nil, notFound("user", id)
	}
	return cloneUser(u), nil
}

// FindByUsername returns a single active user by exact username.
func (s *UserRepository) FindByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if !u.Deleted() && u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}

// List returns all active users ordered by creation time ascending.
func (s *UserRepository) List(_ context.Context) ([]user.User, error) {
	s.mu.RLock()
	users := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		if !u.Deleted() {
			users = append(users, *cloneUser(u))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(users, func(a, b user.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return users, nil
}

// Create persists a new user and returns it with the assigned ID.
func (s *UserRepository) Create(_ context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.usernameTakenLocked(u.Username, 0) || s.emailTakenLocked(u.Email, 0) {
		return nil, conflict("username or email", u.Username)
	}

	s.nextID++
	rec := cloneUser(u)
	rec.ID = s.nextID
	s.users[rec.ID] = rec

	return cloneUser(rec), nil
}

// Update persists changes to an existing active user. The username is
// immutable; the stored value wins.
func (s *UserRepository) Update(_ context.Context, u *user.User) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.users[u.ID]
	if cur == nil || cur.Deleted() {
		return nil, notFound("user", u.ID)
	}
	if s.emailTakenLocked(u.Email, u.ID) {
		return nil, conflict("email", u.Email)
	}

	rec := cloneUser(u)
	rec.Username = cur.Username
	rec.CreatedAt = cur.CreatedAt
	rec.DeletedAt = nil
	s.users[rec.ID] = rec

	return cloneUser(rec), nil
}

// SoftDelete marks the user deleted without removing the entry.
func (s *UserRepository) SoftDelete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.users[id]
	if cur == nil || cur.Deleted() {
		return notFound("user", id)
	}

	now := time.Now().UTC()
	cur.DeletedAt = &now
	cur.UpdatedAt = now
	return nil
}

// ExistsWithUsername reports whether an active user other than excludeID
// holds the username.
func (s *UserRepository) ExistsWithUsername(_ context.Context, username string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usernameTakenLocked(username, excludeID), nil
}

// ExistsWithEmail reports whether an active user other than excludeID holds
// the email.
func (s *UserRepository) ExistsWithEmail(_ context.Context, email string, excludeID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailTakenLocked(email, excludeID), nil
}

func (s *UserRepository) usernameTakenLocked(username string, excludeID int64) bool {
	for _, u := range s.users {
		if !u.Deleted() && u.Username == username && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (s *UserRepository) emailTakenLocked(email string, excludeID int64) bool {
	for _, u := range s.users {
		if !u.Deleted() && u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

func cloneUser(u *user.User) *user.User {
	dup := *u
	if u.DeletedAt != nil {
		ts := *u.DeletedAt
		dup.DeletedAt = &ts
	}
	return &dup
}
