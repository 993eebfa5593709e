package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

type FileRepository struct {
	mu   sync.RWMutex
	byID map[string]*domain.File
}

func NewFileRepository(files ...*domain.File) *FileRepository {
	r := &FileRepository{byID: make(map[string]*domain.File)}
	for _, f := range files {
		c := *f
		r.byID[f.ID] = &c
	}
	return r
}

func (r *FileRepository) FindByID(_ context.Context, id string) (*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.byID[id]; ok {
		c := *f
		return &c, nil
	}
	return nil, domain.ErrFileNotFound
}

func (r *FileRepository) List(_ context.Context, meetingID string) ([]*domain.File, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.File, 0, len(r.byID))
	for _, f := range r.byID {
		if meetingID != "" && f.MeetingID != meetingID {
			continue
		}
		c := *f
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *FileRepository) Insert(_ context.Context, f *domain.File) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *f
	r.byID[f.ID] = &c
	return nil
}
