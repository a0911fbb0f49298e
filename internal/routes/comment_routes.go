package routes

import (
	"github.com/gofiber/fiber/v2"

	"threadhub/internal/controllers"
)

func CommentRoutes(app *fiber.App, h *controllers.CommentHandler) {
	com := app.Group("/comments")
	com.Put("/:id", h.Update)
	com.Delete("/:id", h.Delete)
	com.Post("/:id/vote", h.Vote)
}
