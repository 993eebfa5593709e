package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/client"
)

const (
	ClientCookie = "client_id"
	ClientHeader = "X-Client-ID"

	// ContextClient is the echo context key holding the *client.Instance.
	ContextClient = "client"

	// PrefersColorSchemeHeader is the client hint carrying the OS theme.
	PrefersColorSchemeHeader = "Sec-CH-Prefers-Color-Scheme"
)

// ClientOpener hands out the state of a client id.
type ClientOpener interface {
	Open(ctx context.Context, id string) *client.Instance
}

// Client identifies the browser client behind the request, issuing a new id
// cookie when none or an invalid one is presented, and injects its instance
// into the context.
func Client(clients ClientOpener, secureCookie bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := clientID(c)
			if id == "" {
				id = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     ClientCookie,
					Value:    id,
					Path:     "/",
					Expires:  time.Now().Add(365 * 24 * time.Hour),
					HttpOnly: true,
					Secure:   secureCookie,
					SameSite: http.SameSiteLaxMode,
				})
			}

			inst := clients.Open(c.Request().Context(), id)
			switch strings.ToLower(strings.TrimSpace(c.Request().Header.Get(PrefersColorSchemeHeader))) {
			case "dark":
				inst.Settings.SetSystemPreference(true)
			case "light":
				inst.Settings.SetSystemPreference(false)
			}

			c.Set(ContextClient, inst)
			c.Response().Header().Set(ClientHeader, id)
			return next(c)
		}
	}
}

// clientID returns the presented id in canonical form. Values that are not
// UUIDs are ignored so arbitrary text never reaches storage keys.
func clientID(c echo.Context) string {
	if id, ok := parseClientID(c.Request().Header.Get(ClientHeader)); ok {
		return id
	}
	if ck, err := c.Cookie(ClientCookie); err == nil {
		if id, ok := parseClientID(ck.Value); ok {
			return id
		}
	}
	return ""
}

func parseClientID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
