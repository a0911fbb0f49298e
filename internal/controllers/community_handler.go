package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/dto"
	"threadhub/internal/middleware"
	"threadhub/internal/repository"
	"threadhub/utils"
)

type CommunityHandler struct {
	Repo *repository.CommunityRepository
}

// POST /communities
func (h *CommunityHandler) Create(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	var body dto.CreateCommunityReq
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if msg := utils.ValidateStruct(body); msg != "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
	}

	com, err := h.Repo.Create(c.Context(), body.Name, body.Description, uid)
	if err != nil {
		return repoErr(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// GET /communities
func (h *CommunityHandler) List(c *fiber.Ctx) error {
	items, err := h.Repo.List(c.Context())
	if err != nil {
		return repoErr(c, err)
	}
	return c.JSON(fiber.Map{"communities": items})
}

// POST /communities/:id/join
func (h *CommunityHandler) Join(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid community id"})
	}

	if err := h.Repo.Join(c.Context(), id, uid); err != nil {
		return repoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /communities/:id/join
func (h *CommunityHandler) Leave(c *fiber.Ctx) error {
	uid, err := middleware.UIDObjectID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
	}

	id, err := bson.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid community id"})
	}

	if err := h.Repo.Leave(c.Context(), id, uid); err != nil {
		return repoErr(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
