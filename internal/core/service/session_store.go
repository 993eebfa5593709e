package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/meetdesk/dashboard/internal/api/metrics"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

// SessionStore holds the authenticated identity of one client instance and
// mirrors its token into the client's durable storage.
type SessionStore struct {
	auth    ports.AuthService
	storage ports.KeyValueStore
	log     zerolog.Logger

	mu    sync.RWMutex
	state domain.Session

	logins    singleflight.Group
	observers observers[domain.Session]
}

type loginResult struct {
	token string
	user  *domain.User
}

// NewSessionStore returns a store in the loading state. Call Restore to settle it.
func NewSessionStore(auth ports.AuthService, storage ports.KeyValueStore, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		auth:    auth,
		storage: storage,
		log:     log.With().Str("component", "session").Logger(),
		state:   domain.LoadingSession(),
	}
}

// Session returns a copy of the current state.
func (s *SessionStore) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (s *SessionStore) Subscribe(fn func(domain.Session)) func() {
	return s.observers.add(fn)
}

// Restore resolves the persisted token into a session. Any failure, including
// unreadable storage, settles the store as signed out. It never fails.
// A Login or Logout that lands while the storage read is in flight wins.
func (s *SessionStore) Restore(ctx context.Context) {
	next := s.resolvePersisted(ctx)

	s.mu.Lock()
	if !s.state.IsLoading {
		s.mu.Unlock()
		return
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.observers.notify(snapshot)
}

func (s *SessionStore) resolvePersisted(ctx context.Context) domain.Session {
	token, ok, err := s.storage.Get(ctx, ports.KeyToken)
	if err != nil {
		s.log.Warn().Err(err).Msg("storage unreadable, starting signed out")
		return domain.AnonymousSession()
	}
	if !ok || token == "" {
		return domain.AnonymousSession()
	}

	userID, _, err := s.storage.Get(ctx, ports.KeyUserID)
	if err != nil {
		s.log.Warn().Err(err).Msg("storage unreadable, starting signed out")
		return domain.AnonymousSession()
	}

	user, err := s.auth.ResolveToken(ctx, token, userID)
	if err != nil {
		s.log.Info().Err(err).Msg("persisted session rejected")
		return domain.AnonymousSession()
	}

	s.log.Debug().Int64("user_id", user.ID).Msg("session restored")
	return domain.AuthenticatedSession(user, token)
}

// Login checks the credentials and, on success, persists the token and user
// id and marks the session authenticated. On failure the state is untouched.
// Concurrent calls with the same credentials share a single check.
func (s *SessionStore) Login(ctx context.Context, username, password string) error {
	v, err, shared := s.logins.Do(username+"\x00"+password, func() (interface{}, error) {
		token, user, err := s.auth.Login(ctx, username, password)
		if err != nil {
			return nil, err
		}
		return loginResult{token: token, user: user}, nil
	})
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		s.log.Info().Err(err).Str("username", username).Msg("login failed")
		return err
	}
	if shared {
		s.log.Debug().Str("username", username).Msg("login coalesced with in-flight attempt")
	}

	res := v.(loginResult)
	if err := s.storage.Set(ctx, ports.KeyToken, res.token); err != nil {
		s.log.Warn().Err(err).Msg("token not persisted, session will not survive reload")
	} else if err := s.storage.Set(ctx, ports.KeyUserID, res.user.IDString()); err != nil {
		s.log.Warn().Err(err).Msg("user id not persisted, session will not survive reload")
	}

	s.set(domain.AuthenticatedSession(res.user.Clone(), res.token))
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Int64("user_id", res.user.ID).Str("username", res.user.Username).Msg("logged in")
	return nil
}

// Logout erases the persisted token and user id and signs the session out.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.storage.Delete(ctx, ports.KeyToken, ports.KeyUserID); err != nil {
		s.log.Warn().Err(err).Msg("failed to erase persisted session")
	}
	s.set(domain.AnonymousSession())
	s.log.Info().Msg("logged out")
}

// HasPermission reports whether the current user holds p; false when signed out.
func (s *SessionStore) HasPermission(p domain.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.HasPermission(p)
}

// UserID returns the signed-in user's id, or false when signed out.
func (s *SessionStore) UserID() (int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.IsAuthenticated {
		return 0, false
	}
	return s.state.User.ID, true
}

func (s *SessionStore) set(next domain.Session) {
	s.mu.Lock()
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	s.observers.notify(snapshot)
}

func loginOutcome(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "error"
}
