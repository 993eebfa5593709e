package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

type SettingsHandler struct{}

func NewSettingsHandler() *SettingsHandler {
	return &SettingsHandler{}
}

// Get returns the client's settings and the document they produce.
//
// @Summary      Get settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  settingsResponse
// @Router       /settings [get]
func (h *SettingsHandler) Get(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, settingsResponse{
		Settings:     inst.Settings.Settings(),
		Document:     inst.Settings.Document(),
		ColorSchemes: domain.ColorSchemes(),
	})
}

// Update changes any subset of theme, colour scheme and language.
//
// @Summary      Update settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      updateSettingsRequest  true  "Fields to change"
// @Success      200   {object}  settingsResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /settings [put]
func (h *SettingsHandler) Update(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}

	var req updateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	if req.Theme != nil {
		if err := inst.Settings.SetTheme(ctx, domain.Theme(*req.Theme)); err != nil {
			return err
		}
	}
	if req.ColorScheme != nil {
		if err := inst.Settings.SetColorScheme(ctx, domain.ColorScheme(*req.ColorScheme)); err != nil {
			return err
		}
	}
	if req.Language != nil {
		if err := inst.Settings.SetLanguage(ctx, domain.Language(*req.Language)); err != nil {
			return err
		}
	}

	return h.Get(c)
}
