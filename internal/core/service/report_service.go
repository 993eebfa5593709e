package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

const defaultUpcomingLimit = 5

// ReportService aggregates analytics across meetings, users and files.
type ReportService struct {
	meetings ports.MeetingRepository
	users    ports.UserRepository
	files    ports.FileRepository
	now      func() time.Time
}

func NewReportService(meetings ports.MeetingRepository, users ports.UserRepository, files ports.FileRepository) *ReportService {
	return &ReportService{meetings: meetings, users: users, files: files, now: time.Now}
}

// Build loads the three collections concurrently and folds them into a Report.
func (s *ReportService) Build(ctx context.Context, upcomingLimit int) (*ports.Report, error) {
	if upcomingLimit <= 0 {
		upcomingLimit = defaultUpcomingLimit
	}

	var (
		meetings []*domain.Meeting
		users    []*domain.User
		files    []*domain.File
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		meetings, err = s.meetings.List(gctx, ports.ListMeetingsFilter{})
		if err != nil {
			return fmt.Errorf("report: meetings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		users, err = s.users.List(gctx, ports.UserFilter{})
		if err != nil {
			return fmt.Errorf("report: users: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		files, err = s.files.List(gctx, "")
		if err != nil {
			return fmt.Errorf("report: files: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	r := &ports.Report{
		GeneratedAt:      now,
		TotalMeetings:    len(meetings),
		MeetingsByStatus: make(map[domain.MeetingStatus]int),
		Upcoming:         []*domain.Meeting{},
		TotalUsers:       len(users),
		UsersByRole:      make(map[domain.Role]int),
		TotalFiles:       len(files),
		FilesByType:      make(map[string]int),
	}

	var invited, attended, done int
	for _, m := range meetings {
		r.MeetingsByStatus[m.Status]++
		if m.Status == domain.MeetingScheduled && m.Start.After(now) {
			r.Upcoming = append(r.Upcoming, m)
		}
		for _, res := range m.Resolutions {
			r.TotalResolutions++
			if res.Status == domain.ResolutionDone {
				done++
			}
		}
		if m.Status == domain.MeetingCompleted {
			for _, p := range m.Participants {
				invited++
				if p.Attendance == domain.AttendanceAttended {
					attended++
				}
			}
		}
	}
	r.OpenResolutions = r.TotalResolutions - done
	r.ResolutionCompletion = ratio(done, r.TotalResolutions)
	r.AttendanceRate = ratio(attended, invited)

	sort.Slice(r.Upcoming, func(i, j int) bool { return r.Upcoming[i].Start.Before(r.Upcoming[j].Start) })
	if len(r.Upcoming) > upcomingLimit {
		r.Upcoming = r.Upcoming[:upcomingLimit]
	}

	for _, u := range users {
		r.UsersByRole[u.Role]++
	}
	for _, f := range files {
		r.FilesByType[fileKind(f.MimeType)]++
	}

	return r, nil
}

func ratio(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// fileKind collapses a MIME type to its top-level type ("application/pdf" -> "application").
func fileKind(mime string) string {
	if i := strings.IndexByte(mime, '/'); i > 0 {
		return mime[:i]
	}
	if mime == "" {
		return "unknown"
	}
	return mime
}
