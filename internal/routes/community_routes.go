package routes

import (
	"github.com/gofiber/fiber/v2"

	"threadhub/internal/controllers"
)

func CommunityRoutes(app *fiber.App, h *controllers.CommunityHandler, posts *controllers.PostHandler) {
	com := app.Group("/communities")
	com.Get("/", h.List)
	com.Post("/", h.Create)
	com.Post("/:id/join", h.Join)
	com.Delete("/:id/join", h.Leave)

	com.Get("/:id/posts", posts.ListByCommunity)
	com.Post("/:id/posts", posts.Create)
}
