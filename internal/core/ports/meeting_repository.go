package ports

import (
	"context"
	"time"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// ListMeetingsFilter carries the query parameters for listing meetings.
type ListMeetingsFilter struct {
	Status        domain.MeetingStatus // optional
	ParticipantID int64                // optional: 0 = any
	Search        string               // optional: partial match on title or location
	From          time.Time            // optional: start >= From
	To            time.Time            // optional: start <= To
}

// MeetingRepository defines persistence operations for meetings.
type MeetingRepository interface {
	Create(ctx context.Context, m *domain.Meeting) error
	FindByID(ctx context.Context, id string) (*domain.Meeting, error)
	List(ctx context.Context, filter ListMeetingsFilter) ([]*domain.Meeting, error)
	// Update replaces the stored meeting with the same id.
	Update(ctx context.Context, m *domain.Meeting) error
}

// FileRepository defines read operations for attachment metadata.
type FileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.File, error)
	// List returns every file, or only those attached to meetingID when non-empty.
	List(ctx context.Context, meetingID string) ([]*domain.File, error)
}
