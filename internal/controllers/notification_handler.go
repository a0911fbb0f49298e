package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/middleware"
	"threadhub/internal/repository"
	"threadhub/internal/services"
)

// Notification list pages are capped; older entries age out of view.
const notificationPageSize = 100

type NotificationHandler struct {
	Repo     *repository.NotificationRepository
	Notifier *services.Notifier
}

// List godoc
// @Summary      List the caller's notifications
// @Description  Newest first, capped at 100. Includes read and unread; the unread count rides alongside.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object} map[string]interface{}
// @Failure      401  {object} map[string]string
// @Router       /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	items, err := h.Repo.ListByUser(c.Context(), uid, notificationPageSize)
	if err != nil {
		return repoErr(c, err)
	}

	unread := 0
	for i := range items {
		if !items[i].Read {
			unread++
		}
	}

	return c.JSON(fiber.Map{
		"notifications": items,
		"unread_count":  unread,
	})
}

// ReadAll godoc
// @Summary      Mark every notification read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      204  "No Content"
// @Failure      401  {object} map[string]string
// @Router       /notifications/read-all [patch]
func (h *NotificationHandler) ReadAll(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	if err := h.Notifier.MarkAllRead(c.Context(), uid); err != nil {
		return repoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReadOne godoc
// @Summary      Mark one notification read
// @Description  Only the owner can flip a notification; anyone else's id answers 404.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Notification ID (hex ObjectID)"
// @Success      204  "No Content"
// @Failure      404  {object} map[string]string
// @Router       /notifications/{id}/read [patch]
func (h *NotificationHandler) ReadOne(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}

	if err := h.Notifier.MarkOneRead(c.Context(), uid, id); err != nil {
		return repoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /notifications/:id
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification id"})
	}

	if err := h.Repo.Delete(c.Context(), uid, id); err != nil {
		return repoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
