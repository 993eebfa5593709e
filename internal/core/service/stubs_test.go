package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

var errStorageDown = errors.New("storage down")

type stubUserRepo struct {
	mu    sync.Mutex
	users map[int64]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = u.Clone()
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return u.Clone(), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, _ ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		return nil, domain.ErrUserExists
	}
	r.users[user.ID] = user.Clone()
	return user.Clone(), nil
}

func (r *stubUserRepo) remove(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// stubKV is an in-memory KeyValueStore whose reads and writes can be made to fail.
type stubKV struct {
	mu       sync.Mutex
	data     map[string]string
	failGet  bool
	failSet  bool
	failDel  bool
	setCalls int
}

func newStubKV() *stubKV {
	return &stubKV{data: make(map[string]string)}
}

func (s *stubKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errStorageDown
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *stubKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setCalls++
	if s.failSet {
		return errStorageDown
	}
	s.data[key] = value
	return nil
}

func (s *stubKV) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failDel {
		return errStorageDown
	}
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *stubKV) value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

type publishedNotification struct {
	userID int64
	input  domain.NotificationInput
}

type stubPublisher struct {
	mu   sync.Mutex
	sent []publishedNotification
}

func (p *stubPublisher) Publish(userID int64, in domain.NotificationInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, publishedNotification{userID: userID, input: in})
}

func (p *stubPublisher) all() []publishedNotification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedNotification(nil), p.sent...)
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(h)
}

// testUsers returns an admin with the admin123 credential, a manager with
// the pass-word credential and a directory-only user.
func testUsers(t *testing.T) []*domain.User {
	t.Helper()
	return []*domain.User{
		{ID: 1, Username: "admin", Name: "Admin", Role: domain.RoleAdmin, Permissions: domain.RoleAdmin.DefaultPermissions(), PasswordHash: mustHash(t, "admin123")},
		{ID: 2, Username: "manager", Name: "Manager", Role: domain.RoleManager, Permissions: domain.RoleManager.DefaultPermissions(), PasswordHash: mustHash(t, "pass-word")},
		{ID: 3, Username: "viewer", Name: "Viewer", Role: domain.RoleUser, Permissions: domain.RoleUser.DefaultPermissions()},
	}
}
