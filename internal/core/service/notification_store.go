package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// NotificationStore keeps a client's in-session alerts, newest first.
// Nothing is persisted.
type NotificationStore struct {
	mu    sync.RWMutex
	items []domain.Notification
	now   func() time.Time
	newID func() string
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{now: time.Now, newID: timeOrderedID}
}

// timeOrderedID returns a UUIDv7, whose ordering follows creation time.
func timeOrderedID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Add stores a new unread notification at the head of the list.
func (s *NotificationStore) Add(in domain.NotificationInput) domain.Notification {
	n := domain.Notification{
		ID:        s.newID(),
		Type:      in.Type,
		Title:     in.Title,
		Message:   in.Message,
		Link:      in.Link,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.items = append([]domain.Notification{n}, s.items...)
	s.mu.Unlock()
	return n
}

// MarkAsRead flips a single notification to read without reordering.
func (s *NotificationStore) MarkAsRead(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

// MarkAllAsRead flips every notification to read without reordering.
func (s *NotificationStore) MarkAllAsRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].Read = true
	}
}

// Remove deletes a notification by id.
func (s *NotificationStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotificationNotFound
}

// List returns a copy of the notifications, newest first.
func (s *NotificationStore) List() []domain.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Notification(nil), s.items...)
}

// UnreadCount returns how many notifications are still unread.
func (s *NotificationStore) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, it := range s.items {
		if !it.Read {
			n++
		}
	}
	return n
}

// Clear drops every notification; used when the session signs out.
func (s *NotificationStore) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}
