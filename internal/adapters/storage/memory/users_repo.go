package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"farm-records/internal/domain/accounts"
)

type userRepo struct {
	mu         sync.RWMutex
	byUsername map[string]accounts.User
}

func NewUserRepo() accounts.UserRepository {
	return &userRepo{byUsername: make(map[string]accounts.User)}
}

func (r *userRepo) Create(ctx context.Context, u accounts.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Username) == "" {
		return errors.New("user id and username required")
	}
	if _, exists := r.byUsername[u.Username]; exists {
		return accounts.ErrUsernameTaken
	}
	r.byUsername[u.Username] = u
	return nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (accounts.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return accounts.User{}, accounts.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUsername), nil
}
