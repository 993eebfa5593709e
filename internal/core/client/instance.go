// Package client composes the per-client state containers: one session,
// settings and notification store plus a navigator for each browser client.
package client

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/guard"
	"github.com/meetdesk/dashboard/internal/core/ports"
	"github.com/meetdesk/dashboard/internal/core/service"
)

// Instance is the state of one client, built explicitly from its dependencies.
type Instance struct {
	ID            string
	Session       *service.SessionStore
	Settings      *service.SettingsStore
	Notifications *service.NotificationStore
	Navigator     *guard.Navigator

	lastSeen  time.Time
	unsubDrop func()
}

// NewInstance wires the stores over storage without touching it.
func NewInstance(id string, auth ports.AuthService, storage ports.KeyValueStore, routes *guard.Routes, log zerolog.Logger) *Instance {
	log = log.With().Str("client_id", id).Logger()

	inst := &Instance{
		ID:            id,
		Session:       service.NewSessionStore(auth, storage, log),
		Settings:      service.NewSettingsStore(storage, log),
		Notifications: service.NewNotificationStore(),
	}
	inst.Navigator = guard.NewNavigator(routes, inst.Session, nil)

	// Alerts belong to the signed-in user; drop them on sign out.
	inst.unsubDrop = inst.Session.Subscribe(func(domain.Session) {
		if s := inst.Session.Session(); !s.IsLoading && !s.IsAuthenticated {
			inst.Notifications.Clear()
		}
	})
	return inst
}

// Start performs the startup lookups: the persisted session and settings.
func (i *Instance) Start(ctx context.Context) {
	i.Settings.Load(ctx)
	i.Session.Restore(ctx)
}

// Close releases the subscriptions held by the instance.
func (i *Instance) Close() {
	i.Navigator.Close()
	if i.unsubDrop != nil {
		i.unsubDrop()
	}
}
