package memory

import (
	"sync"
	"time"

	"texglossary/internal/domain"
)

// UserRepo implements repository.UserRepository in memory
type UserRepo struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
}

// NewUserRepo creates an empty in-memory user repository
func NewUserRepo() *UserRepo {
	return &UserRepo{users: make(map[int64]*domain.User)}
}

// IsAuthorized checks if user is authorized
func (r *UserRepo) IsAuthorized(userID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	return ok && u.Authorized, nil
}

// AuthorizeUser marks user as authorized, creating it if needed
func (r *UserRepo) AuthorizeUser(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	u, ok := r.users[userID]
	if !ok {
		u = &domain.User{UserID: userID, CreatedAt: now}
		r.users[userID] = u
	}
	u.Authorized = true
	u.AuthorizedAt = &now
	return nil
}

// EnsureUserExists creates an unauthorized user if not exists
func (r *UserRepo) EnsureUserExists(userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[userID]; !ok {
		r.users[userID] = &domain.User{UserID: userID, CreatedAt: time.Now()}
	}
	return nil
}
