package routes

import (
	"github.com/gofiber/fiber/v2"

	"threadhub/internal/controllers"
)

func NotificationRoutes(app *fiber.App, h *controllers.NotificationHandler) {
	noti := app.Group("/notifications")
	noti.Get("/", h.List)
	noti.Patch("/read-all", h.ReadAll)
	noti.Patch("/:id/read", h.ReadOne)
	noti.Delete("/:id", h.Delete)
}
