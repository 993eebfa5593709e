// Package seed provides the mock dataset served when no database is
// configured, and loads it into any repository set.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// AdminUsername is the only seeded account that carries a credential.
const AdminUsername = "admin"

// Dataset is the mock data of the dashboard.
type Dataset struct {
	Users    []*domain.User
	Meetings []*domain.Meeting
	Files    []*domain.File
}

// Build returns the mock dataset anchored at now. adminHash is the bcrypt
// hash of the admin password.
func Build(adminHash string, now time.Time) Dataset {
	now = now.UTC().Truncate(time.Minute)
	day := 24 * time.Hour

	user := func(id int64, username, name, email, dept string, role domain.Role) *domain.User {
		return &domain.User{
			ID:          id,
			Username:    username,
			Email:       email,
			Role:        role,
			Permissions: role.DefaultPermissions(),
			Name:        name,
			Department:  dept,
			CreatedAt:   now.Add(-90 * day),
			UpdatedAt:   now.Add(-90 * day),
		}
	}

	admin := user(1, AdminUsername, "System Administrator", "admin@meetdesk.local", "IT", domain.RoleAdmin)
	admin.PasswordHash = adminHash

	users := []*domain.User{
		admin,
		user(2, "s.karimi", "Sara Karimi", "s.karimi@meetdesk.local", "Operations", domain.RoleManager),
		user(3, "a.rahimi", "Ali Rahimi", "a.rahimi@meetdesk.local", "Finance", domain.RoleUser),
		user(4, "m.hosseini", "Maryam Hosseini", "m.hosseini@meetdesk.local", "Operations", domain.RoleUser),
		user(5, "r.ahmadi", "Reza Ahmadi", "r.ahmadi@meetdesk.local", "Engineering", domain.RoleManager),
	}

	participant := func(u *domain.User, a domain.Attendance) domain.Participant {
		return domain.Participant{UserID: u.ID, Name: u.Name, Attendance: a}
	}
	at := func(offset time.Duration, hour int) time.Time {
		d := now.Add(offset)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
	}

	meetings := []*domain.Meeting{
		{
			ID:          "m-0001",
			Title:       "Quarterly budget review",
			Description: "Review spending against plan for the last quarter.",
			Location:    "Board room",
			Start:       at(-14*day, 9),
			End:         at(-14*day, 11),
			Status:      domain.MeetingCompleted,
			OrganizerID: 2,
			Participants: []domain.Participant{
				participant(users[1], domain.AttendanceAttended),
				participant(users[2], domain.AttendanceAttended),
				participant(users[3], domain.AttendanceDeclined),
			},
			Resolutions: []domain.Resolution{
				{ID: "r-0001", Text: "Publish revised budget", AssigneeID: 3, DueDate: at(-7*day, 17), Status: domain.ResolutionDone},
				{ID: "r-0002", Text: "Collect department forecasts", AssigneeID: 4, DueDate: at(7*day, 17), Status: domain.ResolutionOpen},
			},
			AttachmentIDs: []string{"f-0001", "f-0002"},
		},
		{
			ID:          "m-0002",
			Title:       "Release planning",
			Description: "Scope and dates for the next release.",
			Location:    "Room 3",
			Start:       at(-2*day, 14),
			End:         at(-2*day, 15),
			Status:      domain.MeetingCompleted,
			OrganizerID: 5,
			Participants: []domain.Participant{
				participant(users[4], domain.AttendanceAttended),
				participant(users[0], domain.AttendanceAttended),
			},
			Resolutions: []domain.Resolution{
				{ID: "r-0003", Text: "Freeze feature list", AssigneeID: 5, DueDate: at(3*day, 12), Status: domain.ResolutionOpen},
			},
			AttachmentIDs: []string{"f-0003"},
		},
		{
			ID:          "m-0003",
			Title:       "Weekly operations sync",
			Location:    "Online",
			Start:       at(1*day, 10),
			End:         at(1*day, 11),
			Status:      domain.MeetingScheduled,
			OrganizerID: 2,
			Participants: []domain.Participant{
				participant(users[1], domain.AttendanceAccepted),
				participant(users[3], domain.AttendancePending),
			},
		},
		{
			ID:          "m-0004",
			Title:       "Security audit kickoff",
			Description: "Agree on audit scope with the external team.",
			Location:    "Room 1",
			Start:       at(5*day, 13),
			End:         at(5*day, 15),
			Status:      domain.MeetingScheduled,
			OrganizerID: 1,
			Participants: []domain.Participant{
				participant(users[0], domain.AttendanceAccepted),
				participant(users[4], domain.AttendancePending),
			},
		},
		{
			ID:          "m-0005",
			Title:       "Vendor negotiation",
			Location:    "Room 2",
			Start:       at(-5*day, 16),
			End:         at(-5*day, 17),
			Status:      domain.MeetingCancelled,
			OrganizerID: 3,
			Participants: []domain.Participant{
				participant(users[2], domain.AttendanceDeclined),
			},
		},
	}
	for _, m := range meetings {
		m.CreatedAt = m.Start.Add(-7 * day)
		m.UpdatedAt = m.CreatedAt
	}

	files := []*domain.File{
		{ID: "f-0001", Name: "budget-q3.xlsx", MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", SizeBytes: 48_213, MeetingID: "m-0001", UploadedBy: 2, UploadedAt: at(-14*day, 12)},
		{ID: "f-0002", Name: "minutes.pdf", MimeType: "application/pdf", SizeBytes: 182_004, MeetingID: "m-0001", UploadedBy: 3, UploadedAt: at(-13*day, 9)},
		{ID: "f-0003", Name: "roadmap.png", MimeType: "image/png", SizeBytes: 640_512, MeetingID: "m-0002", UploadedBy: 5, UploadedAt: at(-2*day, 16)},
		{ID: "f-0004", Name: "handbook.pdf", MimeType: "application/pdf", SizeBytes: 1_204_992, UploadedBy: 1, UploadedAt: at(-30*day, 10)},
	}

	return Dataset{Users: users, Meetings: meetings, Files: files}
}

type userCreator interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type meetingCreator interface {
	Create(ctx context.Context, m *domain.Meeting) error
}

type fileInserter interface {
	Insert(ctx context.Context, f *domain.File) error
}

// Apply writes the dataset through the given repositories. Users that
// already exist are skipped so Apply can run on every start.
func Apply(ctx context.Context, data Dataset, users userCreator, meetings meetingCreator, files fileInserter) error {
	for _, u := range data.Users {
		if _, err := users.Create(ctx, u); err != nil {
			if errors.Is(err, domain.ErrUserExists) {
				return nil
			}
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	for _, m := range data.Meetings {
		if err := meetings.Create(ctx, m); err != nil {
			return fmt.Errorf("seed meeting %s: %w", m.ID, err)
		}
	}
	for _, f := range data.Files {
		if err := files.Insert(ctx, f); err != nil {
			return fmt.Errorf("seed file %s: %w", f.ID, err)
		}
	}
	return nil
}
