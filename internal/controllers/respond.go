package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"threadhub/internal/repository"
)

// repoErr maps repository sentinel errors onto HTTP responses. Infrastructure
// errors answer with a generic body; the detail stays in the server log.
func repoErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already exists"})
	case errors.Is(err, repository.ErrBadCursor):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cursor"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
