package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/api/middleware"
	"github.com/meetdesk/dashboard/internal/core/client"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

// ctxInstance returns the client instance injected by the Client middleware.
// Its absence means the route was mounted without the middleware.
func ctxInstance(c echo.Context) (*client.Instance, error) {
	inst, ok := c.Get(middleware.ContextClient).(*client.Instance)
	if !ok || inst == nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "client not resolved")
	}
	return inst, nil
}

// ctxClaims extracts the token claims injected by the Auth middleware. A
// zero user id means the token is structurally valid but unusable.
func ctxClaims(c echo.Context) (*ports.TokenClaims, error) {
	claims, ok := c.Get(middleware.ContextClaims).(*ports.TokenClaims)
	if !ok || claims == nil || claims.UserID == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
