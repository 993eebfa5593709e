package ports

import (
	"context"
	"time"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// CreateMeetingInput carries the data needed to schedule a meeting.
type CreateMeetingInput struct {
	Title          string
	Description    string
	Location       string
	Start          time.Time
	End            time.Time
	OrganizerID    int64
	ParticipantIDs []int64
}

// AddResolutionInput carries a new action item.
type AddResolutionInput struct {
	MeetingID  string
	Text       string
	AssigneeID int64
	DueDate    time.Time
}

// MeetingService defines use-case operations for meetings.
type MeetingService interface {
	List(ctx context.Context, filter ListMeetingsFilter) ([]*domain.Meeting, error)
	Get(ctx context.Context, id string) (*domain.Meeting, error)
	Create(ctx context.Context, input CreateMeetingInput) (*domain.Meeting, error)
	UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) (*domain.Meeting, error)
	AddResolution(ctx context.Context, input AddResolutionInput) (*domain.Meeting, error)
	SetResolutionStatus(ctx context.Context, meetingID, resolutionID string, status domain.ResolutionStatus) (*domain.Meeting, error)
	SetAttendance(ctx context.Context, meetingID string, userID int64, attendance domain.Attendance) (*domain.Meeting, error)
}

// FileService serves the attachments pages.
type FileService interface {
	List(ctx context.Context, meetingID string) ([]*domain.File, error)
	Get(ctx context.Context, id string) (*domain.File, error)
}

// NotificationPublisher delivers notification inputs to a user's open clients.
type NotificationPublisher interface {
	Publish(userID int64, input domain.NotificationInput)
}
