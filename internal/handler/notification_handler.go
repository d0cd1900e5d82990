package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"internship-portal/internal/domain"
	"internship-portal/internal/middleware"
	"internship-portal/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func recipientOf(identity domain.Identity) domain.RecipientRef {
	return domain.RecipientRef{ID: identity.ID, Model: identity.Role}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	params, err := parsePagination(c)
	if err != nil {
		return err
	}

	filter := domain.NotificationFilter{UnreadOnly: c.QueryBool("unreadOnly", false)}
	if raw := strings.TrimSpace(c.Query("type")); raw != "" {
		t := domain.NotificationType(raw)
		filter.Type = &t
	}
	if raw := strings.TrimSpace(c.Query("priority")); raw != "" {
		p := domain.Priority(raw)
		if !p.IsValid() {
			return domain.NewValidationError("Invalid priority")
		}
		filter.Priority = &p
	}

	result, err := h.notifService.List(c.Context(), recipientOf(identity), filter, params)
	if err != nil {
		return err
	}

	return jsonPage(c, result)
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.UnreadCount(c.Context(), recipientOf(identity))
	if err != nil {
		return err
	}

	return jsonOK(c, "", fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	notifID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}

	if err := h.notifService.MarkRead(c.Context(), notifID, recipientOf(identity)); err != nil {
		return err
	}

	return jsonOK(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAllRead(c.Context(), recipientOf(identity))
	if err != nil {
		return err
	}

	return jsonOK(c, "All notifications marked as read", fiber.Map{"updated": updated})
}
