package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type MeetingRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.Meeting
}

func NewMeetingRepository(meetings ...*domain.Meeting) *MeetingRepository {
	r := &MeetingRepository{byID: make(map[string]*domain.Meeting)}
	for _, m := range meetings {
		r.byID[m.ID] = m.Clone()
	}
	return r
}

func (r *MeetingRepository) Create(_ context.Context, m *domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[m.ID] = m.Clone()
	return nil
}

func (r *MeetingRepository) FindByID(_ context.Context, id string) (*domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.byID[id]; ok {
		return m.Clone(), nil
	}
	return nil, domain.ErrMeetingNotFound
}

func (r *MeetingRepository) List(_ context.Context, f ports.ListMeetingsFilter) ([]*domain.Meeting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.Search)
	out := make([]*domain.Meeting, 0, len(r.byID))
	for _, m := range r.byID {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.ParticipantID != 0 && !m.HasParticipant(f.ParticipantID) {
			continue
		}
		if search != "" && !containsFold(search, m.Title, m.Location) {
			continue
		}
		if !f.From.IsZero() && m.Start.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && m.Start.After(f.To) {
			continue
		}
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (r *MeetingRepository) Update(_ context.Context, m *domain.Meeting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[m.ID]; !ok {
		return domain.ErrMeetingNotFound
	}
	r.byID[m.ID] = m.Clone()
	return nil
}
