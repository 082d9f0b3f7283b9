package auth

import "github.com/doctrack/trackctl/internal/session"

// Landing routes per role. School users land on the home surface;
// office and admin users go straight to the ongoing task queue.
const (
	RouteHome  = "/home"
	RouteTasks = "/task/ongoing"
	RouteLogin = "/login"
)

// LandingRoute returns the surface a freshly authenticated user of the
// given role is taken to.
func LandingRoute(role session.Role) string {
	switch role {
	case session.RoleOffice, session.RoleAdmin:
		return RouteTasks
	default:
		return RouteHome
	}
}
