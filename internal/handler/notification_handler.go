package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"swapr-backend/internal/domain"
	"swapr-backend/internal/middleware"
	"swapr-backend/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	unreadOnly := c.QueryBool("unreadOnly")
	params := getPaginationParams(c)

	list, err := h.notifService.List(c.Context(), middleware.GetCurrentUserID(c), unreadOnly, params)
	if err != nil {
		return err
	}

	return c.JSON(list)
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	updated, err := h.notifService.MarkAsRead(c.Context(), id, middleware.GetCurrentUserID(c))
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.JSON(updated)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	if err := h.notifService.MarkAllAsRead(c.Context(), middleware.GetCurrentUserID(c)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifService.Delete(c.Context(), id, middleware.GetCurrentUserID(c)); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"message": "Notification deleted"})
}

func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var input domain.BroadcastInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := validate.Struct(&input); err != nil {
		return middleware.BadRequest(err.Error())
	}

	sentCount, err := h.notifService.Broadcast(c.Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":   "Announcement sent",
		"sentCount": sentCount,
	})
}
