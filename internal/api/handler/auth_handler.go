package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/guard"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token exchanges credentials for a bearer token for the data API.
//
// @Summary      Issue an API token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token, User: user})
}

// Login signs the calling client in.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := inst.Session.Login(c.Request().Context(), req.Username, req.Password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid username or password")
		}
		return err
	}

	resp := toSessionResponse(inst.Session.Session())
	resp.Redirect = safeRedirect(req.Redirect, c.QueryParam("redirect"))
	return c.JSON(http.StatusOK, resp)
}

// Logout signs the calling client out.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	inst.Session.Logout(c.Request().Context())

	resp := toSessionResponse(inst.Session.Session())
	resp.Redirect = guard.LoginPath
	return c.JSON(http.StatusOK, resp)
}

// Session reports the calling client's session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(inst.Session.Session()))
}

// Navigate runs the route guard for a path without rendering it.
//
// @Summary      Evaluate a navigation
// @Tags         session
// @Produce      json
// @Param        path  query     string  true  "Target path"
// @Success      200   {object}  navigateResponse
// @Failure      400   {object}  errorResponse
// @Router       /navigate [get]
func (h *AuthHandler) Navigate(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	path := c.QueryParam("path")
	if !strings.HasPrefix(path, "/") {
		return echo.NewHTTPError(http.StatusBadRequest, "path must be absolute")
	}

	d := inst.Navigator.Navigate(path)
	return c.JSON(http.StatusOK, navigateResponse{Decision: d, Session: toSessionResponse(inst.Session.Session())})
}

func toSessionResponse(s domain.Session) sessionResponse {
	perms := s.User.PermissionSet().Slice()
	return sessionResponse{
		User:            s.User,
		IsAuthenticated: s.IsAuthenticated,
		IsLoading:       s.IsLoading,
		Permissions:     perms,
	}
}

// safeRedirect picks the first local path among candidates, falling back to "/".
func safeRedirect(candidates ...string) string {
	for _, p := range candidates {
		if strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && p != guard.LoginPath {
			return p
		}
	}
	return "/"
}
