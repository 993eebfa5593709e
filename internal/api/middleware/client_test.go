package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/client"
	"github.com/meetdesk/dashboard/internal/core/domain"
)

func runClient(t *testing.T, opener *recordingOpener, req *http.Request) (*httptest.ResponseRecorder, *client.Instance) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var inst *client.Instance
	handler := Client(opener, false)(func(c echo.Context) error {
		inst, _ = c.Get(ContextClient).(*client.Instance)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if inst == nil {
		t.Fatal("client instance not set")
	}
	return rec, inst
}

func TestClientMiddleware_IssuesCookie(t *testing.T) {
	opener := newOpener(t)
	rec, inst := runClient(t, opener, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != ClientCookie || cookies[0].Value == "" {
		t.Fatalf("expected a client cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("client cookie must be HttpOnly")
	}
	if inst.ID != cookies[0].Value {
		t.Fatalf("instance %q does not match cookie %q", inst.ID, cookies[0].Value)
	}
	if rec.Header().Get(ClientHeader) != inst.ID {
		t.Fatalf("response header = %q", rec.Header().Get(ClientHeader))
	}
}

func TestClientMiddleware_ReusesPresentedID(t *testing.T) {
	opener := newOpener(t)
	fromCookie, fromHeader := uuid.NewString(), uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: fromCookie})
	rec, inst := runClient(t, opener, req)
	if inst.ID != fromCookie || len(rec.Result().Cookies()) != 0 {
		t.Fatalf("cookie id not reused: %s", inst.ID)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: ClientCookie, Value: fromCookie})
	req.Header.Set(ClientHeader, fromHeader)
	_, inst = runClient(t, opener, req)
	if inst.ID != fromHeader {
		t.Fatalf("header should take precedence, got %s", inst.ID)
	}
}

func TestClientMiddleware_AppliesColorSchemeHint(t *testing.T) {
	opener := newOpener(t)
	hinted := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, hinted)
	req.Header.Set(PrefersColorSchemeHeader, "dark")
	_, inst := runClient(t, opener, req)

	if got := inst.Settings.Document().Theme; got != domain.ThemeDark {
		t.Fatalf("expected dark document, got %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, hinted)
	req.Header.Set(PrefersColorSchemeHeader, "light")
	_, inst = runClient(t, opener, req)

	if got := inst.Settings.Document().Theme; got != domain.ThemeLight {
		t.Fatalf("expected light document, got %s", got)
	}
}

func TestClientMiddleware_ReplacesInvalidID(t *testing.T) {
	cases := []struct {
		name  string
		apply func(req *http.Request)
	}{
		{"header key pattern", func(req *http.Request) { req.Header.Set(ClientHeader, "*") }},
		{"header with separator", func(req *http.Request) { req.Header.Set(ClientHeader, "victim:token") }},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: ClientCookie, Value: "not-a-uuid"}) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.apply(req)
			rec, inst := runClient(t, newOpener(t), req)

			if _, err := uuid.Parse(inst.ID); err != nil {
				t.Fatalf("instance id %q is not a uuid", inst.ID)
			}
			cookies := rec.Result().Cookies()
			if len(cookies) != 1 || cookies[0].Value != inst.ID {
				t.Fatalf("expected a fresh client cookie, got %v", cookies)
			}
		})
	}
}

func TestClientMiddleware_CanonicalisesID(t *testing.T) {
	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(ClientHeader, "  "+strings.ToUpper(id.String())+" ")
	_, inst := runClient(t, newOpener(t), req)

	if inst.ID != id.String() {
		t.Fatalf("id = %q, want %q", inst.ID, id.String())
	}
}
