package guard

import (
	"sync"
	"testing"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

type stubSource struct {
	mu    sync.Mutex
	state domain.Session
	subs  []func(domain.Session)
}

func (s *stubSource) Session() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *stubSource) Subscribe(fn func(domain.Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs[idx] = nil
	}
}

func (s *stubSource) set(next domain.Session) {
	s.mu.Lock()
	s.state = next
	subs := append(([]func(domain.Session))(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn(next)
		}
	}
}

// deliver notifies subscribers with snap without changing the current state.
func (s *stubSource) deliver(snap domain.Session) {
	s.mu.Lock()
	subs := append(([]func(domain.Session))(nil), s.subs...)
	s.mu.Unlock()
	for _, fn := range subs {
		if fn != nil {
			fn(snap)
		}
	}
}

func TestNavigator_StartsAtRootLoading(t *testing.T) {
	src := &stubSource{state: domain.LoadingSession()}
	n := NewNavigator(DefaultRoutes(), src, nil)

	path, d := n.Current()
	if path != "/" || d.Kind != Loading {
		t.Errorf("Current() = %q, %s", path, d.Kind)
	}
}

func TestNavigator_ReevaluatesOnSessionChange(t *testing.T) {
	admin := domain.AuthenticatedSession(userWith(domain.AllPermissions()...), "t")
	src := &stubSource{state: admin}

	var seen []Kind
	n := NewNavigator(DefaultRoutes(), src, func(d Decision) { seen = append(seen, d.Kind) })
	defer n.Close()

	if d := n.Navigate("/users"); d.Kind != Render {
		t.Fatalf("Navigate = %s, want render", d.Kind)
	}

	src.set(domain.AnonymousSession())

	_, d := n.Current()
	if d.Kind != RedirectLogin || d.Location != "/login?redirect=%2Fusers" {
		t.Fatalf("after logout: %+v", d)
	}
	if len(seen) != 2 || seen[0] != Render || seen[1] != RedirectLogin {
		t.Errorf("onChange saw %v", seen)
	}
}

func TestNavigator_PermissionLossRedirectsToNotFound(t *testing.T) {
	src := &stubSource{state: domain.AuthenticatedSession(userWith(domain.PermManageFiles), "t")}
	n := NewNavigator(DefaultRoutes(), src, nil)

	n.Navigate("/files")
	src.set(domain.AuthenticatedSession(userWith(domain.PermManageMeetings), "t"))

	if _, d := n.Current(); d.Kind != RedirectNotFound {
		t.Errorf("Kind = %s, want redirect_not_found", d.Kind)
	}
}

func TestNavigator_UnchangedDecisionIsNotReported(t *testing.T) {
	src := &stubSource{state: domain.AnonymousSession()}
	calls := 0
	n := NewNavigator(DefaultRoutes(), src, func(Decision) { calls++ })

	n.Navigate("/login")
	src.set(domain.AnonymousSession())

	if calls != 1 {
		t.Errorf("onChange called %d times, want 1", calls)
	}
}

func TestNavigator_CloseStopsFollowing(t *testing.T) {
	src := &stubSource{state: domain.AuthenticatedSession(userWith(), "t")}
	n := NewNavigator(DefaultRoutes(), src, nil)
	n.Navigate("/profile")
	n.Close()

	src.set(domain.AnonymousSession())
	if _, d := n.Current(); d.Kind != Render {
		t.Errorf("closed navigator changed decision to %s", d.Kind)
	}
}

func TestNavigator_LateSnapshotDoesNotRestoreAccess(t *testing.T) {
	admin := domain.AuthenticatedSession(userWith(domain.AllPermissions()...), "t")
	src := &stubSource{state: domain.AnonymousSession()}
	n := NewNavigator(DefaultRoutes(), src, nil)

	if d := n.Navigate("/users"); d.Kind != RedirectLogin {
		t.Fatalf("Navigate(/users) = %s, want %s", d.Kind, RedirectLogin)
	}

	// A login snapshot delivered after the logout that superseded it.
	src.deliver(admin)

	if _, d := n.Current(); d.Kind != RedirectLogin {
		t.Errorf("after stale snapshot = %s, want %s", d.Kind, RedirectLogin)
	}
}
