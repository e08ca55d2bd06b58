package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/usercore/account-service/internal/core/ports"
)

type AvatarHandler struct {
	avatars ports.AvatarRepository
}

func NewAvatarHandler(avatars ports.AvatarRepository) *AvatarHandler {
	return &AvatarHandler{avatars: avatars}
}

// Get resolves an avatar reference to its stored record.
//
// @Summary      Fetch an avatar by id
// @Tags         avatars
// @Produce      json
// @Param        id   path      int  true  "Avatar id"
// @Success      200  {object}  domain.UserAvatar
// @Failure      404  {object}  errorResponse
// @Router       /avatars/{id} [get]
func (h *AvatarHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid avatar id"})
	}

	avatar, err := h.avatars.FindByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, avatar)
}
