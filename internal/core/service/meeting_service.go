package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/api/metrics"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type MeetingService struct {
	repo      ports.MeetingRepository
	users     ports.UserRepository
	publisher ports.NotificationPublisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewMeetingService(repo ports.MeetingRepository, users ports.UserRepository, publisher ports.NotificationPublisher, logger zerolog.Logger) *MeetingService {
	return &MeetingService{
		repo:      repo,
		users:     users,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *MeetingService) List(ctx context.Context, filter ports.ListMeetingsFilter) ([]*domain.Meeting, error) {
	meetings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list meetings: %w", err)
	}
	return meetings, nil
}

func (s *MeetingService) Get(ctx context.Context, id string) (*domain.Meeting, error) {
	return s.repo.FindByID(ctx, id)
}

// Create schedules a meeting, resolving participant names from the user
// directory, and notifies every participant.
func (s *MeetingService) Create(ctx context.Context, input ports.CreateMeetingInput) (*domain.Meeting, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidMeeting)
	}
	if !input.End.After(input.Start) {
		return nil, fmt.Errorf("%w: end must be after start", domain.ErrInvalidMeeting)
	}

	participants := make([]domain.Participant, 0, len(input.ParticipantIDs))
	seen := make(map[int64]struct{}, len(input.ParticipantIDs))
	for _, id := range input.ParticipantIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("create meeting: participant %d: %w", id, err)
		}
		participants = append(participants, domain.Participant{
			UserID:     u.ID,
			Name:       u.Name,
			Attendance: domain.AttendancePending,
		})
	}

	now := s.now().UTC()
	meeting := &domain.Meeting{
		ID:           uuid.NewString(),
		Title:        title,
		Description:  input.Description,
		Location:     input.Location,
		Start:        input.Start.UTC(),
		End:          input.End.UTC(),
		Status:       domain.MeetingScheduled,
		OrganizerID:  input.OrganizerID,
		Participants: participants,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, meeting); err != nil {
		s.logger.Error().Err(err).Msg("failed to create meeting")
		return nil, err
	}

	metrics.MeetingsCreatedTotal.Inc()
	s.logger.Info().Str("meeting_id", meeting.ID).Int("participants", len(participants)).Msg("meeting created")

	for _, p := range participants {
		s.publisher.Publish(p.UserID, domain.NotificationInput{
			Type:    domain.NotificationMeeting,
			Title:   "New meeting: " + meeting.Title,
			Message: fmt.Sprintf("Scheduled for %s", meeting.Start.Format(time.RFC1123)),
			Link:    "/meetings/" + meeting.ID,
		})
	}

	return meeting, nil
}

// UpdateStatus moves the meeting along its lifecycle.
func (s *MeetingService) UpdateStatus(ctx context.Context, id string, status domain.MeetingStatus) (*domain.Meeting, error) {
	return s.mutate(ctx, id, func(m *domain.Meeting) error {
		if !m.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, m.Status, status)
		}
		m.Status = status
		return nil
	})
}

func (s *MeetingService) AddResolution(ctx context.Context, input ports.AddResolutionInput) (*domain.Meeting, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: resolution text is required", domain.ErrInvalidMeeting)
	}

	var assigned bool
	m, err := s.mutate(ctx, input.MeetingID, func(m *domain.Meeting) error {
		if input.AssigneeID != 0 && !m.HasParticipant(input.AssigneeID) && m.OrganizerID != input.AssigneeID {
			return domain.ErrParticipantNotFound
		}
		m.Resolutions = append(m.Resolutions, domain.Resolution{
			ID:         uuid.NewString(),
			Text:       text,
			AssigneeID: input.AssigneeID,
			DueDate:    input.DueDate.UTC(),
			Status:     domain.ResolutionOpen,
		})
		assigned = input.AssigneeID != 0
		return nil
	})
	if err != nil {
		return nil, err
	}

	if assigned {
		s.publisher.Publish(input.AssigneeID, domain.NotificationInput{
			Type:    domain.NotificationTask,
			Title:   "New action item",
			Message: text,
			Link:    "/meetings/" + m.ID,
		})
	}
	return m, nil
}

func (s *MeetingService) SetResolutionStatus(ctx context.Context, meetingID, resolutionID string, status domain.ResolutionStatus) (*domain.Meeting, error) {
	return s.mutate(ctx, meetingID, func(m *domain.Meeting) error {
		for i := range m.Resolutions {
			if m.Resolutions[i].ID == resolutionID {
				m.Resolutions[i].Status = status
				return nil
			}
		}
		return domain.ErrResolutionNotFound
	})
}

func (s *MeetingService) SetAttendance(ctx context.Context, meetingID string, userID int64, attendance domain.Attendance) (*domain.Meeting, error) {
	return s.mutate(ctx, meetingID, func(m *domain.Meeting) error {
		for i := range m.Participants {
			if m.Participants[i].UserID == userID {
				m.Participants[i].Attendance = attendance
				return nil
			}
		}
		return domain.ErrParticipantNotFound
	})
}

func (s *MeetingService) mutate(ctx context.Context, id string, fn func(*domain.Meeting) error) (*domain.Meeting, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	m.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update meeting: %w", err)
	}
	return m, nil
}
