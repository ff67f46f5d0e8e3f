package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lostfound/internal/errors"
	"lostfound/internal/service"
)

// NotificationHandler handles notification endpoints.
type NotificationHandler struct {
	userService service.UserService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(userService service.UserService) *NotificationHandler {
	return &NotificationHandler{userService: userService}
}

// List godoc
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Notification
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	notifications, err := h.userService.ListNotifications(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, notifications)
}

// MarkRead godoc
// @Summary Mark all of the caller's notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /notifications/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.userService.MarkNotificationsRead(c.Request().Context(), userID); err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "notifications marked as read",
	})
}
