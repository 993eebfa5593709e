package guard

import (
	"sync"

	"github.com/meetdesk/dashboard/internal/api/metrics"
	"github.com/meetdesk/dashboard/internal/core/domain"
)

// SessionSource is what the navigator needs from a session store.
type SessionSource interface {
	Session() domain.Session
	Subscribe(fn func(domain.Session)) func()
}

// Navigator tracks the current path of one client and re-runs the guard on
// every navigation and every session change, so protected content is never
// left rendered after a logout or permission change.
type Navigator struct {
	routes *Routes
	source SessionSource
	cancel func()

	mu       sync.RWMutex
	path     string
	decision Decision
	onChange func(Decision)
}

// NewNavigator starts at "/" and subscribes to source. onChange may be nil.
func NewNavigator(routes *Routes, source SessionSource, onChange func(Decision)) *Navigator {
	n := &Navigator{routes: routes, source: source, path: "/", onChange: onChange}
	n.decision = n.evaluate(source.Session(), n.path)
	n.cancel = source.Subscribe(n.sessionChanged)
	return n
}

// Navigate evaluates path and makes it current.
func (n *Navigator) Navigate(path string) Decision {
	d := n.evaluate(n.source.Session(), path)

	n.mu.Lock()
	n.path = path
	n.decision = d
	cb := n.onChange
	n.mu.Unlock()

	if cb != nil {
		cb(d)
	}
	return d
}

// Current returns the path and the latest decision for it.
func (n *Navigator) Current() (string, Decision) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.path, n.decision
}

// Close stops following session changes.
func (n *Navigator) Close() {
	if n.cancel != nil {
		n.cancel()
	}
}

// sessionChanged treats the notification as a wake-up only. Snapshots from
// concurrent changes can arrive out of order, so the current state is re-read.
func (n *Navigator) sessionChanged(domain.Session) {
	n.mu.Lock()
	d := n.evaluate(n.source.Session(), n.path)
	changed := d != n.decision
	n.decision = d
	cb := n.onChange
	n.mu.Unlock()

	if changed && cb != nil {
		cb(d)
	}
}

func (n *Navigator) evaluate(s domain.Session, path string) Decision {
	d := Evaluate(n.routes, s, path)
	metrics.GuardDecisionsTotal.WithLabelValues(string(d.Kind)).Inc()
	return d
}
