package routes

import (
	"github.com/gofiber/fiber/v2"

	"threadhub/internal/controllers"
)

func PostRoutes(app *fiber.App, h *controllers.PostHandler, comments *controllers.CommentHandler) {
	post := app.Group("/posts")
	post.Get("/:postId", h.Get)
	post.Put("/:postId", h.Update)
	post.Delete("/:postId", h.Delete)
	post.Post("/:postId/vote", h.Vote)

	post.Get("/:postId/comments", comments.List)
	post.Get("/:postId/comments/tree", comments.Tree)
	post.Post("/:postId/comments", comments.Create)
}
