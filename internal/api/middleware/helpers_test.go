package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/core/client"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/guard"
	"github.com/meetdesk/dashboard/internal/core/ports"
	"github.com/meetdesk/dashboard/internal/core/service"
	"github.com/meetdesk/dashboard/internal/infrastructure/db/memory"
	"github.com/meetdesk/dashboard/internal/infrastructure/seed"
)

type stubVerifier struct {
	claims *ports.TokenClaims
	err    error
	got    string
}

func (s *stubVerifier) VerifyToken(token string) (*ports.TokenClaims, error) {
	s.got = token
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

var errBadToken = errors.New("bad token")

// recordingOpener hands out instances from a real registry and remembers the ids asked for.
type recordingOpener struct {
	reg *client.Registry
	ids []string
}

func (o *recordingOpener) Open(ctx context.Context, id string) *client.Instance {
	o.ids = append(o.ids, id)
	return o.reg.Open(ctx, id)
}

func newAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	hash, err := service.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	data := seed.Build(hash, time.Now())
	users := append(data.Users, &domain.User{
		ID:           100,
		Username:     "manager",
		PasswordHash: hash,
		Role:         domain.RoleManager,
		Permissions:  domain.RoleManager.DefaultPermissions(),
	})
	return service.NewAuthService(memory.NewUserRepository(users...), "test-secret", time.Hour)
}

func newOpener(t *testing.T) *recordingOpener {
	t.Helper()
	reg := client.NewRegistry(newAuthService(t), memory.NewStorageProvider(), guard.DefaultRoutes(), time.Hour, zerolog.Nop())
	return &recordingOpener{reg: reg}
}

// newInstance returns an instance; started instances have a settled session.
func newInstance(t *testing.T, start bool) *client.Instance {
	t.Helper()
	inst := client.NewInstance("test-client", newAuthService(t), memory.NewKV(), guard.DefaultRoutes(), zerolog.Nop())
	if start {
		inst.Start(context.Background())
	}
	return inst
}

func claimsWith(perms ...domain.Permission) *ports.TokenClaims {
	return &ports.TokenClaims{UserID: 1, Username: "admin", Role: domain.RoleAdmin, Permissions: domain.NewPermissionSet(perms...)}
}
