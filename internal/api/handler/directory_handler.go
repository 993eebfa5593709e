package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/v1/users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role        query     string  false  "admin, manager or user"
// @Param        department  query     string  false  "Department"
// @Param        search      query     string  false  "Partial match on username, name or email"
// @Success      200         {object}  listResponse[domain.User]
// @Failure      400         {object}  errorResponse
// @Router       /api/v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	filter, err := parseUserFilter(c)
	if err != nil {
		return err
	}
	users, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(users))
}

// Get handles GET /api/v1/users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return domain.ErrUserNotFound
	}
	u, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func parseUserFilter(c echo.Context) (ports.UserFilter, error) {
	f := ports.UserFilter{
		Department: c.QueryParam("department"),
		Search:     c.QueryParam("search"),
	}
	if r := c.QueryParam("role"); r != "" {
		role := domain.Role(r)
		if !role.Valid() {
			return f, echo.NewHTTPError(http.StatusBadRequest, "invalid role")
		}
		f.Role = role
	}
	return f, nil
}

type FileHandler struct {
	service ports.FileService
}

func NewFileHandler(service ports.FileService) *FileHandler {
	return &FileHandler{service: service}
}

// List handles GET /api/v1/files.
//
// @Summary      List files
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        meeting_id  query     string  false  "Only files attached to this meeting"
// @Success      200         {object}  listResponse[domain.File]
// @Router       /api/v1/files [get]
func (h *FileHandler) List(c echo.Context) error {
	files, err := h.service.List(c.Request().Context(), c.QueryParam("meeting_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListResponse(files))
}

// Get handles GET /api/v1/files/:id.
//
// @Summary      Get file metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "File id"
// @Success      200  {object}  domain.File
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/files/{id} [get]
func (h *FileHandler) Get(c echo.Context) error {
	f, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, f)
}

type ReportHandler struct {
	service ports.ReportService
}

func NewReportHandler(service ports.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Get handles GET /api/v1/reports.
//
// @Summary      Meeting analytics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        upcoming  query     int  false  "How many upcoming meetings to include"
// @Success      200       {object}  ports.Report
// @Router       /api/v1/reports [get]
func (h *ReportHandler) Get(c echo.Context) error {
	limit := 0
	if s := c.QueryParam("upcoming"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid upcoming")
		}
		limit = n
	}
	report, err := h.service.Build(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
