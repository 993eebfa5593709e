package guard

import (
	"strings"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

// Route declares a page path and what it takes to view it.
type Route struct {
	Pattern  string
	Public   bool
	Required []domain.Permission
}

// Routes is an ordered route table. The first matching pattern wins; "*"
// matches anything.
type Routes struct {
	routes   []Route
	fallback Route
}

// NewRoutes builds a table. A "*" entry becomes the fallback; without one,
// unknown paths are public.
func NewRoutes(routes ...Route) *Routes {
	t := &Routes{fallback: Route{Pattern: "*", Public: true}}
	for _, r := range routes {
		if r.Pattern == "*" {
			t.fallback = r
			continue
		}
		t.routes = append(t.routes, r)
	}
	return t
}

// DefaultRoutes is the dashboard's page surface.
func DefaultRoutes() *Routes {
	meetings := []domain.Permission{domain.PermManageMeetings}
	users := []domain.Permission{domain.PermManageUsers}
	files := []domain.Permission{domain.PermManageFiles}

	return NewRoutes(
		Route{Pattern: LoginPath, Public: true},
		Route{Pattern: "/"},
		Route{Pattern: "/calendar", Required: meetings},
		Route{Pattern: "/meetings", Required: meetings},
		Route{Pattern: "/meetings/:id", Required: meetings},
		Route{Pattern: "/users", Required: users},
		Route{Pattern: "/users/:id", Required: users},
		Route{Pattern: "/reports", Required: []domain.Permission{domain.PermViewReports}},
		Route{Pattern: "/files", Required: files},
		Route{Pattern: "/files/:id", Required: files},
		Route{Pattern: "/profile"},
		Route{Pattern: NotFoundPath, Public: true},
		Route{Pattern: "*", Public: true},
	)
}

// All returns the declared routes, fallback last.
func (t *Routes) All() []Route {
	return append(append([]Route(nil), t.routes...), t.fallback)
}

// Match returns the route for path.
func (t *Routes) Match(path string) Route {
	path = normalize(path)
	for _, r := range t.routes {
		if matchPattern(r.Pattern, path) {
			return r
		}
	}
	return t.fallback
}

func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "/"
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

func matchPattern(pattern, path string) bool {
	ps := strings.Split(pattern, "/")
	xs := strings.Split(path, "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if strings.HasPrefix(ps[i], ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if ps[i] != xs[i] {
			return false
		}
	}
	return true
}
