package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

// RBAC enforces role-based access control. It resolves the logged-in user
// through the session bound by the Session middleware, so it must run
// after it. An absent or expired login state yields 401, a disallowed
// role 403.
func RBAC(auth ports.AuthService, allowedRoles ...domain.UserRole) echo.MiddlewareFunc {
	allowed := make(map[domain.UserRole]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, _ := c.Get(ContextKeySession).(ports.Session)
			user, err := auth.CurrentUser(c.Request().Context(), session)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
			}
			if _, ok := allowed[user.Role]; !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
