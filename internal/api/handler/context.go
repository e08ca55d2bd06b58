package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/api/middleware"
	"github.com/usercore/account-service/internal/core/ports"
)

// ctxSession extracts the session view injected by the Session middleware.
// Its presence proves the middleware ran; a missing session on a protected
// route means the route is wired wrong, which surfaces as 401 rather than
// a panic.
func ctxSession(c echo.Context) (ports.Session, error) {
	session, _ := c.Get(middleware.ContextKeySession).(ports.Session)
	if session == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return session, nil
}
