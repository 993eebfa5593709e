package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type UserRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*domain.User
	nextID int64
}

func NewUserRepository(users ...*domain.User) *UserRepository {
	r := &UserRepository{byID: make(map[int64]*domain.User)}
	for _, u := range users {
		_, _ = r.Create(context.Background(), u)
	}
	return r
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	c := user.Clone()
	if c.ID == 0 {
		c.ID = r.nextID + 1
	}
	if _, taken := r.byID[c.ID]; taken {
		return nil, domain.ErrUserExists
	}
	if c.ID > r.nextID {
		r.nextID = c.ID
	}
	r.byID[c.ID] = c
	return c.Clone(), nil
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.byID {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.byID[id]; ok {
		return u.Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(filter.Search)
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Department != "" && u.Department != filter.Department {
			continue
		}
		if search != "" && !containsFold(search, u.Username, u.Name, u.Email) {
			continue
		}
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func containsFold(needle string, haystacks ...string) bool {
	for _, h := range haystacks {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}
