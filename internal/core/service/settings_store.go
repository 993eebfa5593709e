package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/api/metrics"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

// SettingsStore holds the presentation preferences of one client, persists
// each field on change and keeps the applied Document in sync.
type SettingsStore struct {
	storage ports.KeyValueStore
	log     zerolog.Logger

	mu         sync.RWMutex
	settings   domain.Settings
	systemDark bool
	doc        domain.Document

	observers observers[domain.Document]
}

// NewSettingsStore returns a store holding the defaults, already applied.
func NewSettingsStore(storage ports.KeyValueStore, log zerolog.Logger) *SettingsStore {
	s := &SettingsStore{
		storage:  storage,
		log:      log.With().Str("component", "settings").Logger(),
		settings: domain.DefaultSettings(),
	}
	s.doc = domain.BuildDocument(s.settings, false)
	return s
}

// Load reads the persisted fields. Missing or invalid values keep their
// defaults; unreadable storage keeps all defaults.
func (s *SettingsStore) Load(ctx context.Context) {
	settings := domain.DefaultSettings()

	if v, ok := s.read(ctx, ports.KeyTheme); ok {
		if t, err := domain.ParseTheme(v); err == nil {
			settings.Theme = t
		}
	}
	if v, ok := s.read(ctx, ports.KeyColorScheme); ok {
		if c, err := domain.ParseColorScheme(v); err == nil {
			settings.ColorScheme = c
		}
	}
	if v, ok := s.read(ctx, ports.KeyLanguage); ok {
		if l, err := domain.ParseLanguage(v); err == nil {
			settings = domain.NewSettings(settings.Theme, settings.ColorScheme, l)
		}
	}

	s.apply(func(cur *domain.Settings) { *cur = settings })
}

func (s *SettingsStore) read(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("settings storage unreadable, using default")
		return "", false
	}
	return v, ok
}

// Settings returns the current preferences.
func (s *SettingsStore) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Document returns the currently applied document state.
func (s *SettingsStore) Document() domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDocument(s.doc)
}

// Subscribe registers fn to run after every application of the settings.
func (s *SettingsStore) Subscribe(fn func(domain.Document)) func() {
	return s.observers.add(fn)
}

// SetTheme stores the chosen theme and re-resolves the document.
// Unknown themes are rejected without touching state.
func (s *SettingsStore) SetTheme(ctx context.Context, theme domain.Theme) error {
	if _, err := domain.ParseTheme(string(theme)); err != nil {
		return err
	}
	s.apply(func(cur *domain.Settings) { cur.Theme = theme })
	s.persist(ctx, ports.KeyTheme, string(theme))
	return nil
}

// SetColorScheme stores the accent palette. Unknown schemes are rejected.
func (s *SettingsStore) SetColorScheme(ctx context.Context, scheme domain.ColorScheme) error {
	if _, err := domain.ParseColorScheme(string(scheme)); err != nil {
		return err
	}
	s.apply(func(cur *domain.Settings) { cur.ColorScheme = scheme })
	s.persist(ctx, ports.KeyColorScheme, string(scheme))
	return nil
}

// SetLanguage switches the language. Direction and font are applied in the
// same critical section, so readers never see a mismatched direction.
func (s *SettingsStore) SetLanguage(ctx context.Context, lang domain.Language) error {
	if _, err := domain.ParseLanguage(string(lang)); err != nil {
		return err
	}
	s.apply(func(cur *domain.Settings) {
		*cur = domain.NewSettings(cur.Theme, cur.ColorScheme, lang)
	})
	s.persist(ctx, ports.KeyLanguage, string(lang))
	return nil
}

// SetSystemPreference records the OS dark-mode preference. The document is
// re-resolved only while the theme follows the system.
func (s *SettingsStore) SetSystemPreference(dark bool) {
	s.mu.Lock()
	if s.systemDark == dark {
		s.mu.Unlock()
		return
	}
	s.systemDark = dark
	if s.settings.Theme != domain.ThemeSystem {
		s.mu.Unlock()
		return
	}
	s.doc = domain.BuildDocument(s.settings, s.systemDark)
	doc := cloneDocument(s.doc)
	s.mu.Unlock()

	s.observers.notify(doc)
}

func (s *SettingsStore) apply(mutate func(*domain.Settings)) {
	s.mu.Lock()
	mutate(&s.settings)
	s.doc = domain.BuildDocument(s.settings, s.systemDark)
	doc := cloneDocument(s.doc)
	s.mu.Unlock()

	s.observers.notify(doc)
}

func (s *SettingsStore) persist(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("setting not persisted")
		return
	}
	metrics.SettingsChangesTotal.WithLabelValues(key).Inc()
}

func cloneDocument(d domain.Document) domain.Document {
	out := d
	out.Classes = append([]string(nil), d.Classes...)
	out.Tokens = make(map[string]string, len(d.Tokens))
	for k, v := range d.Tokens {
		out.Tokens[k] = v
	}
	return out
}
