package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Notifications godoc
// @Summary List unread notifications for the signed-in user
// @Tags notifications
// @Produce json
// @Success 200 {array} Notification
// @Failure 401 {object} map[string]string
// @Router /api/v1/notifications [get]
func (h *Handler) Notifications(c echo.Context) error {
	list, err := h.manager.Notifications(c.Request().Context(), actor(c))
	if err != nil {
		return h.handleError(c, err)
	}

	return c.JSON(http.StatusOK, NewNotifications(list))
}

// ClearNotifications godoc
// @Summary Delete all unread notifications for the signed-in user
// @Tags notifications
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /api/v1/notifications [delete]
func (h *Handler) ClearNotifications(c echo.Context) error {
	if err := h.manager.ClearNotifications(c.Request().Context(), actor(c)); err != nil {
		return h.handleError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
