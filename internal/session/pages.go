package session

import (
	"context"
	"strings"

	"devhub/internal/models"
)

const (
	PageIndex              = "index.html"
	PageLogin              = "login.html"
	PageRegister           = "register.html"
	PageDeveloperDashboard = "developer-dashboard.html"
	PageClientDashboard    = "client-dashboard.html"
	PageAdminDashboard     = "admin-dashboard.html"
)

var publicPages = map[string]struct{}{
	PageIndex:    {},
	PageLogin:    {},
	PageRegister: {},
	"":           {},
}

// PageName returns the last path segment, the way page names are compared.
func PageName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func IsPublicPage(path string) bool {
	_, ok := publicPages[PageName(path)]
	return ok
}

// CheckAuth decides whether a page may be shown. It returns the landing page
// to redirect to when there is no token and the page is not public.
func CheckAuth(ctx context.Context, s *Session, path string) (redirect string, allowed bool) {
	if s.IsAuthenticated(ctx) || IsPublicPage(path) {
		return "", true
	}
	return PageIndex, false
}

// DashboardPage picks the dashboard for a user, or "" when the user has no
// known role.
func DashboardPage(user *models.User) string {
	switch {
	case user == nil:
		return ""
	case user.IsAdmin():
		return PageAdminDashboard
	case user.UserType == models.UserTypeDeveloper:
		return PageDeveloperDashboard
	case user.UserType == models.UserTypeClient:
		return PageClientDashboard
	}
	return ""
}
