package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

const dashboardUpcoming = 5

// PageHandler renders the view models of the dashboard pages. Access is
// decided by the Guard middleware before any of these run.
type PageHandler struct {
	meetings ports.MeetingService
	users    ports.UserService
	files    ports.FileService
	reports  ports.ReportService
	now      func() time.Time
}

func NewPageHandler(meetings ports.MeetingService, users ports.UserService, files ports.FileService, reports ports.ReportService) *PageHandler {
	return &PageHandler{meetings: meetings, users: users, files: files, reports: reports, now: time.Now}
}

func (h *PageHandler) render(c echo.Context, status int, page string, data any) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	return c.JSON(status, pageResponse{
		Page:     page,
		Path:     c.Request().URL.Path,
		User:     inst.Session.Session().User,
		Document: inst.Settings.Document(),
		Data:     data,
	})
}

func (h *PageHandler) Login(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "login", map[string]any{
		"redirect":      safeRedirect(c.QueryParam("redirect")),
		"authenticated": inst.Session.Session().IsAuthenticated,
	})
}

func (h *PageHandler) NotFound(c echo.Context) error {
	return h.render(c, http.StatusNotFound, "not_found", nil)
}

type dashboardData struct {
	Summary     *ports.Report     `json:"summary"`
	MyMeetings  []*domain.Meeting `json:"my_meetings"`
	UnreadCount int               `json:"unread_count"`
}

func (h *PageHandler) Dashboard(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	report, err := h.reports.Build(ctx, dashboardUpcoming)
	if err != nil {
		return err
	}

	data := dashboardData{Summary: report, UnreadCount: inst.Notifications.UnreadCount()}
	if uid, ok := inst.Session.UserID(); ok {
		data.MyMeetings, err = h.meetings.List(ctx, ports.ListMeetingsFilter{
			Status:        domain.MeetingScheduled,
			ParticipantID: uid,
			From:          h.now(),
		})
		if err != nil {
			return err
		}
	}
	return h.render(c, http.StatusOK, "dashboard", data)
}

type calendarData struct {
	Month    string                       `json:"month"`
	Days     map[string][]*domain.Meeting `json:"days"`
	Previous string                       `json:"previous"`
	Next     string                       `json:"next"`
}

// Calendar groups the meetings of one month by day. ?month=YYYY-MM, default
// the current month.
func (h *PageHandler) Calendar(c echo.Context) error {
	month := h.now().UTC()
	if s := c.QueryParam("month"); s != "" {
		t, err := time.Parse("2006-01", s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid month")
		}
		month = t
	}
	from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	meetings, err := h.meetings.List(c.Request().Context(), ports.ListMeetingsFilter{From: from, To: to})
	if err != nil {
		return err
	}

	days := make(map[string][]*domain.Meeting)
	for _, m := range meetings {
		key := m.Start.UTC().Format(time.DateOnly)
		days[key] = append(days[key], m)
	}
	return h.render(c, http.StatusOK, "calendar", calendarData{
		Month:    from.Format("2006-01"),
		Days:     days,
		Previous: from.AddDate(0, -1, 0).Format("2006-01"),
		Next:     from.AddDate(0, 1, 0).Format("2006-01"),
	})
}

func (h *PageHandler) Meetings(c echo.Context) error {
	filter, err := parseMeetingFilter(c)
	if err != nil {
		return err
	}
	meetings, err := h.meetings.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "meetings", newListResponse(meetings))
}

type meetingDetailData struct {
	Meeting *domain.Meeting `json:"meeting"`
	Files   []*domain.File  `json:"files"`
}

func (h *PageHandler) MeetingDetail(c echo.Context) error {
	ctx := c.Request().Context()
	m, err := h.meetings.Get(ctx, c.Param("id"))
	if err != nil {
		return err
	}
	files, err := h.files.List(ctx, m.ID)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "meeting_detail", meetingDetailData{Meeting: m, Files: files})
}

func (h *PageHandler) Users(c echo.Context) error {
	filter, err := parseUserFilter(c)
	if err != nil {
		return err
	}
	users, err := h.users.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "users", newListResponse(users))
}

type userDetailData struct {
	User     *domain.User      `json:"user"`
	Meetings []*domain.Meeting `json:"meetings"`
}

func (h *PageHandler) UserDetail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrUserNotFound
	}
	ctx := c.Request().Context()
	u, err := h.users.Get(ctx, id)
	if err != nil {
		return err
	}
	meetings, err := h.meetings.List(ctx, ports.ListMeetingsFilter{ParticipantID: id})
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "user_detail", userDetailData{User: u, Meetings: meetings})
}

func (h *PageHandler) Reports(c echo.Context) error {
	report, err := h.reports.Build(c.Request().Context(), 0)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "reports", report)
}

func (h *PageHandler) Files(c echo.Context) error {
	files, err := h.files.List(c.Request().Context(), c.QueryParam("meeting_id"))
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "files", newListResponse(files))
}

func (h *PageHandler) FileDetail(c echo.Context) error {
	f, err := h.files.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "file_detail", f)
}

type profileData struct {
	Settings    domain.Settings     `json:"settings"`
	Permissions []domain.Permission `json:"permissions"`
}

func (h *PageHandler) Profile(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	return h.render(c, http.StatusOK, "profile", profileData{
		Settings:    inst.Settings.Settings(),
		Permissions: inst.Session.Session().User.PermissionSet().Slice(),
	})
}
