package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sihul/sihul-backend/internal/repository"
)

// NotificationHandler serves each user's in-app messages.
type NotificationHandler struct {
	Notifications *repository.NotificationRepo
}

// NewNotificationHandler constructs a NotificationHandler and panics on nil deps.
func NewNotificationHandler(n *repository.NotificationRepo) *NotificationHandler {
	if n == nil {
		panic("nil repository passed to NewNotificationHandler")
	}
	return &NotificationHandler{Notifications: n}
}

// List returns the caller's notifications, newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	list, err := h.Notifications.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notifications failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"notifications": list})
}

// MarkRead flags one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, uid); err != nil {
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "notification not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "mark read failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
