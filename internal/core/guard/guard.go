// Package guard decides whether a navigation target may render given the
// session of the client.
package guard

import (
	"net/url"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

const (
	LoginPath    = "/login"
	NotFoundPath = "/404"
)

// Kind is the outcome of a guard evaluation.
type Kind string

const (
	Render           Kind = "render"
	RedirectLogin    Kind = "redirect_login"
	RedirectNotFound Kind = "redirect_not_found"
	Loading          Kind = "loading"
)

// Decision is the result of evaluating a navigation.
type Decision struct {
	Kind Kind `json:"decision"`
	// Path is the navigation target that was evaluated.
	Path string `json:"path"`
	// Location is set for redirects.
	Location string `json:"location,omitempty"`
}

// Decide applies the guard rules in order: loading, authentication, then
// permissions (all of required must be held). An empty required set only
// demands authentication.
func Decide(s domain.Session, path string, required []domain.Permission) Decision {
	switch {
	case s.IsLoading:
		return Decision{Kind: Loading, Path: path}
	case !s.IsAuthenticated:
		return Decision{Kind: RedirectLogin, Path: path, Location: LoginLocation(path)}
	case !s.User.PermissionSet().HasAll(required...):
		return Decision{Kind: RedirectNotFound, Path: path, Location: NotFoundPath}
	default:
		return Decision{Kind: Render, Path: path}
	}
}

// LoginLocation is the login URL remembering from for post-login return.
func LoginLocation(from string) string {
	if from == "" || from == LoginPath {
		return LoginPath
	}
	return LoginPath + "?redirect=" + url.QueryEscape(from)
}

// Evaluate looks the path up in routes and decides. Public routes always render.
func Evaluate(routes *Routes, s domain.Session, path string) Decision {
	route := routes.Match(path)
	if route.Public {
		return Decision{Kind: Render, Path: path}
	}
	return Decide(s, path, route.Required)
}
