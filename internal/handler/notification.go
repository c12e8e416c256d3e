package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/linkedweld/linkedweld-api/internal/middleware"
)

// notificationPageSize caps how many notifications the list endpoint
// returns.
const notificationPageSize = 50

// NotificationHandler serves the caller's notification feed.
type NotificationHandler struct {
	Notifications NotificationStore
}

func NewNotificationHandler(store NotificationStore) *NotificationHandler {
	return &NotificationHandler{Notifications: store}
}

// List returns the caller's newest notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	items, err := h.Notifications.ListByUser(ctx, userID, notificationPageSize)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}
	return jsonOK(c, http.StatusOK, items)
}

// UnreadCount returns how many of the caller's notifications are unread.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	n, err := h.Notifications.UnreadCount(ctx, userID)
	if err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Lookup failed")
	}
	return jsonOK(c, http.StatusOK, echo.Map{"count": n})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return jsonErr(c, http.StatusBadRequest, "Invalid notification id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, userID); err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Update failed")
	}
	return jsonOK(c, http.StatusOK, echo.Map{"message": "Marked as read"})
}

// MarkAllRead marks every notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return jsonErr(c, http.StatusUnauthorized, "Not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Notifications.MarkAllRead(ctx, userID); err != nil {
		return jsonErr(c, http.StatusInternalServerError, "Update failed")
	}
	return jsonOK(c, http.StatusOK, echo.Map{"message": "All notifications marked as read"})
}
