package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

// MeetingHandler handles HTTP requests for meeting operations.
type MeetingHandler struct {
	service ports.MeetingService
}

func NewMeetingHandler(service ports.MeetingService) *MeetingHandler {
	return &MeetingHandler{service: service}
}

// List handles GET /api/v1/meetings.
//
// @Summary      List meetings
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        status          query     string  false  "Filter by status"
// @Param        participant_id  query     int     false  "Filter by participant"
// @Param        search          query     string  false  "Partial match on title or location"
// @Param        from            query     string  false  "Start on or after (RFC3339 or YYYY-MM-DD)"
// @Param        to              query     string  false  "Start on or before (RFC3339 or YYYY-MM-DD)"
// @Success      200             {object}  listResponse[domain.Meeting]
// @Failure      400             {object}  errorResponse
// @Router       /api/v1/meetings [get]
func (h *MeetingHandler) List(c echo.Context) error {
	filter, err := parseMeetingFilter(c)
	if err != nil {
		return err
	}
	meetings, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(meetings))
}

// Get handles GET /api/v1/meetings/:id.
//
// @Summary      Get a meeting
// @Tags         meetings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Meeting id"
// @Success      200  {object}  domain.Meeting
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/meetings/{id} [get]
func (h *MeetingHandler) Get(c echo.Context) error {
	m, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Create handles POST /api/v1/meetings. The caller becomes the organizer.
//
// @Summary      Schedule a meeting
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createMeetingRequest  true  "Meeting"
// @Success      201   {object}  domain.Meeting
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/meetings [post]
func (h *MeetingHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createMeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	m, err := h.service.Create(c.Request().Context(), ports.CreateMeetingInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Start:          req.Start,
		End:            req.End,
		OrganizerID:    claims.UserID,
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/v1/meetings/"+m.ID)
	return c.JSON(http.StatusCreated, m)
}

// UpdateStatus handles PATCH /api/v1/meetings/:id/status.
//
// @Summary      Change meeting status
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Meeting id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  domain.Meeting
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/meetings/{id}/status [patch]
func (h *MeetingHandler) UpdateStatus(c echo.Context) error {
	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	m, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), domain.MeetingStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// AddResolution handles POST /api/v1/meetings/:id/resolutions.
//
// @Summary      Add an action item
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Meeting id"
// @Param        body  body      addResolutionRequest  true  "Resolution"
// @Success      201   {object}  domain.Meeting
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/meetings/{id}/resolutions [post]
func (h *MeetingHandler) AddResolution(c echo.Context) error {
	var req addResolutionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	m, err := h.service.AddResolution(c.Request().Context(), ports.AddResolutionInput{
		MeetingID:  c.Param("id"),
		Text:       req.Text,
		AssigneeID: req.AssigneeID,
		DueDate:    req.DueDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// SetResolutionStatus handles PATCH /api/v1/meetings/:id/resolutions/:rid.
//
// @Summary      Complete or reopen an action item
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                   true  "Meeting id"
// @Param        rid   path      string                   true  "Resolution id"
// @Param        body  body      resolutionStatusRequest  true  "Status"
// @Success      200   {object}  domain.Meeting
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/meetings/{id}/resolutions/{rid} [patch]
func (h *MeetingHandler) SetResolutionStatus(c echo.Context) error {
	var req resolutionStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	m, err := h.service.SetResolutionStatus(c.Request().Context(), c.Param("id"), c.Param("rid"), domain.ResolutionStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// SetAttendance handles PUT /api/v1/meetings/:id/participants/:uid.
//
// @Summary      Record attendance
// @Tags         meetings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Meeting id"
// @Param        uid   path      int                true  "Participant user id"
// @Param        body  body      attendanceRequest  true  "Attendance"
// @Success      200   {object}  domain.Meeting
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/meetings/{id}/participants/{uid} [put]
func (h *MeetingHandler) SetAttendance(c echo.Context) error {
	uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
	if err != nil || uid <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	var req attendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	m, err := h.service.SetAttendance(c.Request().Context(), c.Param("id"), uid, domain.Attendance(req.Attendance))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

func parseMeetingFilter(c echo.Context) (ports.ListMeetingsFilter, error) {
	var f ports.ListMeetingsFilter

	if s := c.QueryParam("status"); s != "" {
		st := domain.MeetingStatus(s)
		switch st {
		case domain.MeetingScheduled, domain.MeetingInProgress, domain.MeetingCompleted, domain.MeetingCancelled:
			f.Status = st
		default:
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}
	if s := c.QueryParam("participant_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid participant_id")
		}
		f.ParticipantID = id
	}
	f.Search = c.QueryParam("search")

	var err error
	if f.From, err = parseTimeParam(c.QueryParam("from")); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid from")
	}
	if f.To, err = parseTimeParam(c.QueryParam("to")); err != nil {
		return f, echo.NewHTTPError(http.StatusBadRequest, "invalid to")
	}
	return f, nil
}

// parseTimeParam accepts RFC3339 timestamps or plain dates. Empty is zero.
func parseTimeParam(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
