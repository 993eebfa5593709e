package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

type NotificationHandler struct {
	publisher ports.NotificationPublisher
}

func NewNotificationHandler(publisher ports.NotificationPublisher) *NotificationHandler {
	return &NotificationHandler{publisher: publisher}
}

// List returns the client's notifications, newest first.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  notificationListResponse
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationListResponse{
		Items:       inst.Notifications.List(),
		UnreadCount: inst.Notifications.UnreadCount(),
	})
}

// MarkRead marks one notification as read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Param        id   path  string  true  "Notification id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	if err := inst.Notifications.MarkAsRead(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkAllRead marks every notification as read.
//
// @Summary      Mark all notifications read
// @Tags         notifications
// @Success      204
// @Router       /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	inst.Notifications.MarkAllAsRead()
	return c.NoContent(http.StatusNoContent)
}

// Remove deletes one notification.
//
// @Summary      Delete a notification
// @Tags         notifications
// @Param        id   path  string  true  "Notification id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /notifications/{id} [delete]
func (h *NotificationHandler) Remove(c echo.Context) error {
	inst, err := ctxInstance(c)
	if err != nil {
		return err
	}
	if err := inst.Notifications.Remove(c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Send queues a notification for every open client of a user.
//
// @Summary      Send a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sendNotificationRequest  true  "Notification"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/v1/notifications [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	var req sendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	typ, err := domain.ParseNotificationType(req.Type)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.publisher.Publish(req.UserID, domain.NotificationInput{
		Type:    typ,
		Title:   req.Title,
		Message: req.Message,
		Link:    req.Link,
	})
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "notification queued"})
}
