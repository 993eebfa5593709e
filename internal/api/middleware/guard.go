package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/client"
	"github.com/meetdesk/dashboard/internal/core/guard"
)

type guardResponse struct {
	Error    string     `json:"error"`
	Decision guard.Kind `json:"decision"`
	Location string     `json:"location,omitempty"`
}

// Guard runs the route guard for page requests. It must be mounted after
// Client. Browsers are redirected; XHR callers get a JSON status instead.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			inst, ok := c.Get(ContextClient).(*client.Instance)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "client not resolved")
			}

			d := inst.Navigator.Navigate(c.Request().URL.RequestURI())
			switch d.Kind {
			case guard.Render:
				return next(c)
			case guard.Loading:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusAccepted, d)
			case guard.RedirectLogin:
				if wantsJSON(c.Request()) {
					return c.JSON(http.StatusUnauthorized, guardResponse{Error: "authentication required", Decision: d.Kind, Location: d.Location})
				}
				return c.Redirect(http.StatusFound, d.Location)
			default:
				if wantsJSON(c.Request()) {
					return c.JSON(http.StatusForbidden, guardResponse{Error: "page not available", Decision: d.Kind, Location: d.Location})
				}
				return c.Redirect(http.StatusFound, d.Location)
			}
		}
	}
}

func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get(echo.HeaderXRequestedWith), "XMLHttpRequest") {
		return true
	}
	accept := r.Header.Get(echo.HeaderAccept)
	return strings.HasPrefix(accept, echo.MIMEApplicationJSON)
}
