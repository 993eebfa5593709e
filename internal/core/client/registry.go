package client

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/api/metrics"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/guard"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

const defaultIdleTTL = 30 * time.Minute

// Registry keeps the live client instances keyed by client id. Evicted
// instances are rebuilt from durable storage on the next request.
type Registry struct {
	auth    ports.AuthService
	storage ports.StorageProvider
	routes  *guard.Routes
	log     zerolog.Logger
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	instances map[string]*Instance
}

func NewRegistry(auth ports.AuthService, storage ports.StorageProvider, routes *guard.Routes, idleTTL time.Duration, log zerolog.Logger) *Registry {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &Registry{
		auth:      auth,
		storage:   storage,
		routes:    routes,
		log:       log,
		idleTTL:   idleTTL,
		now:       time.Now,
		instances: make(map[string]*Instance),
	}
}

// Open returns the instance for id, creating and starting it when needed.
// Start outlives ctx so a dropped request cannot settle the instance signed out.
func (r *Registry) Open(ctx context.Context, id string) *Instance {
	r.mu.Lock()
	inst, ok := r.instances[id]
	if !ok {
		inst = NewInstance(id, r.auth, r.storage.ForClient(id), r.routes, r.log)
		r.instances[id] = inst
		metrics.ActiveClients.Set(float64(len(r.instances)))
	}
	inst.lastSeen = r.now()
	r.mu.Unlock()

	if !ok {
		inst.Start(context.WithoutCancel(ctx))
	}
	return inst
}

// Deliver adds the notification to every instance signed in as userID and
// returns how many received it.
func (r *Registry) Deliver(userID int64, in domain.NotificationInput) int {
	r.mu.Lock()
	targets := make([]*Instance, 0)
	for _, inst := range r.instances {
		if id, ok := inst.Session.UserID(); ok && id == userID {
			targets = append(targets, inst)
		}
	}
	r.mu.Unlock()

	for _, inst := range targets {
		inst.Notifications.Add(in)
	}
	if len(targets) > 0 {
		metrics.NotificationsDeliveredTotal.WithLabelValues(string(in.Type)).Add(float64(len(targets)))
	}
	return len(targets)
}

// Sweep closes and drops instances idle for longer than the TTL.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	var stale []*Instance
	for id, inst := range r.instances {
		if inst.lastSeen.Before(cutoff) {
			stale = append(stale, inst)
			delete(r.instances, id)
		}
	}
	metrics.ActiveClients.Set(float64(len(r.instances)))
	r.mu.Unlock()

	for _, inst := range stale {
		inst.Close()
	}
	return len(stale)
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.Debug().Int("evicted", n).Msg("idle clients evicted")
			}
		}
	}
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}
