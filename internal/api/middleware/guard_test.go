package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/client"
)

func runGuard(t *testing.T, inst *client.Instance, req *http.Request) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ContextClient, inst)

	rendered := false
	handler := Guard()(func(c echo.Context) error {
		rendered = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, rendered
}

func TestGuardMiddleware_RedirectsAnonymousBrowser(t *testing.T) {
	inst := newInstance(t, true)

	rec, rendered := runGuard(t, inst, httptest.NewRequest(http.MethodGet, "/meetings?status=scheduled", nil))
	if rendered {
		t.Fatal("protected page rendered for anonymous client")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login?redirect=%2Fmeetings%3Fstatus%3Dscheduled" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestGuardMiddleware_JSONCallers(t *testing.T) {
	inst := newInstance(t, true)

	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec, _ := runGuard(t, inst, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body guardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Decision != "redirect_login" || body.Location != "/login?redirect=%2Freports" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestGuardMiddleware_MissingPermission(t *testing.T) {
	inst := newInstance(t, true)
	if err := inst.Session.Login(context.Background(), "manager", "admin123"); err != nil {
		t.Fatalf("login: %v", err)
	}

	rec, rendered := runGuard(t, inst, httptest.NewRequest(http.MethodGet, "/meetings", nil))
	if !rendered || rec.Code != http.StatusOK {
		t.Fatalf("manager should render /meetings, got %d", rec.Code)
	}

	rec, rendered = runGuard(t, inst, httptest.NewRequest(http.MethodGet, "/users", nil))
	if rendered {
		t.Fatal("/users rendered without manage_users")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/404" {
		t.Fatalf("expected 302 to /404, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	req.Header.Set(echo.HeaderXRequestedWith, "XMLHttpRequest")
	rec, _ = runGuard(t, inst, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	inst.Session.Logout(context.Background())
	rec, _ = runGuard(t, inst, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", rec.Code)
	}
}

func TestGuardMiddleware_LoadingSession(t *testing.T) {
	inst := newInstance(t, false)

	rec, rendered := runGuard(t, inst, httptest.NewRequest(http.MethodGet, "/", nil))
	if rendered {
		t.Fatal("rendered while the session was loading")
	}
	if rec.Code != http.StatusAccepted || rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected 202 with Retry-After, got %d %q", rec.Code, rec.Header().Get("Retry-After"))
	}
}

func TestGuardMiddleware_PublicPagesRender(t *testing.T) {
	inst := newInstance(t, false)
	for _, path := range []string{"/login", "/404"} {
		if _, rendered := runGuard(t, inst, httptest.NewRequest(http.MethodGet, path, nil)); !rendered {
			t.Fatalf("%s did not render", path)
		}
	}
}

func TestGuardMiddleware_RequiresClient(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	err := Guard()(func(c echo.Context) error { return nil })(c)
	if err == nil {
		t.Fatal("expected an error without a client")
	}
	e.HTTPErrorHandler(err, c)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
