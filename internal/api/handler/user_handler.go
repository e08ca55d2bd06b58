package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/api/metrics"
	"github.com/usercore/account-service/internal/core/ports"
)

type UserHandler struct {
	authService   ports.AuthService
	searchService ports.SearchService
}

func NewUserHandler(authService ports.AuthService, searchService ports.SearchService) *UserHandler {
	return &UserHandler{authService: authService, searchService: searchService}
}

// Me returns the sanitized user stored in the current session.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  domain.SanitizedUser
// @Failure      401  {object}  errorResponse
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Search pages through users filtered by display name.
//
// @Summary      Search users by display name
// @Tags         users
// @Produce      json
// @Param        name       query     string  false  "Display name substring; blank matches everyone"
// @Param        page       query     int     false  "Page number, 1-based"
// @Param        page_size  query     int     false  "Rows per page"
// @Success      200  {object}  domain.UserPage
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	metrics.SearchesTotal.Inc()
	start := time.Now()

	page, err := h.searchService.SearchByName(c.Request().Context(), req.Name, req.Page, req.PageSize)
	if err != nil {
		return err
	}

	metrics.SearchDuration.Observe(time.Since(start).Seconds())
	return c.JSON(http.StatusOK, page)
}
