package ports

import (
	"context"
	"time"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// Report aggregates the analytics shown on the dashboard and reports pages.
type Report struct {
	GeneratedAt          time.Time                    `json:"generated_at"`
	TotalMeetings        int                          `json:"total_meetings"`
	MeetingsByStatus     map[domain.MeetingStatus]int `json:"meetings_by_status"`
	Upcoming             []*domain.Meeting            `json:"upcoming"`
	TotalResolutions     int                          `json:"total_resolutions"`
	OpenResolutions      int                          `json:"open_resolutions"`
	ResolutionCompletion float64                      `json:"resolution_completion"`
	AttendanceRate       float64                      `json:"attendance_rate"`
	TotalUsers           int                          `json:"total_users"`
	UsersByRole          map[domain.Role]int          `json:"users_by_role"`
	TotalFiles           int                          `json:"total_files"`
	FilesByType          map[string]int               `json:"files_by_type"`
}

// ReportService computes dashboard analytics.
type ReportService interface {
	Build(ctx context.Context, upcomingLimit int) (*Report, error)
}
