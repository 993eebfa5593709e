package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/api/middleware"
	"github.com/meetdesk/dashboard/internal/core/client"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/guard"
	"github.com/meetdesk/dashboard/internal/core/ports"
	"github.com/meetdesk/dashboard/internal/core/service"
	"github.com/meetdesk/dashboard/internal/infrastructure/db/memory"
	"github.com/meetdesk/dashboard/internal/infrastructure/seed"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	data  seed.Dataset
	auth  *service.AuthService
	users *memory.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hash, err := service.HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	data := seed.Build(hash, testNow)
	users := memory.NewUserRepository(data.Users...)
	return &fixture{data: data, auth: service.NewAuthService(users, "test-secret", time.Hour), users: users}
}

// instance returns a started client instance, signed in as admin when login is set.
func (f *fixture) instance(t *testing.T, login bool) *client.Instance {
	t.Helper()
	inst := client.NewInstance("test-client", f.auth, memory.NewKV(), guard.DefaultRoutes(), zerolog.Nop())
	inst.Start(context.Background())
	if login {
		if err := inst.Session.Login(context.Background(), "admin", "admin123"); err != nil {
			t.Fatalf("login: %v", err)
		}
	}
	return inst
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

// newContext builds a request context; body is sent as JSON when non-nil.
func newContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withInstance(c echo.Context, inst *client.Instance) {
	c.Set(middleware.ContextClient, inst)
}

func withClaims(c echo.Context, userID int64, perms ...domain.Permission) {
	c.Set(middleware.ContextClaims, &ports.TokenClaims{
		UserID:      userID,
		Username:    "admin",
		Role:        domain.RoleAdmin,
		Permissions: domain.NewPermissionSet(perms...),
	})
}

func httpStatus(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T: %v", err, err)
	}
	return he.Code
}

type stubPublisher struct {
	mu   sync.Mutex
	sent []domain.NotificationInput
	to   []int64
}

func (p *stubPublisher) Publish(userID int64, in domain.NotificationInput) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.to = append(p.to, userID)
	p.sent = append(p.sent, in)
}
