package routes

import (
	"github.com/gofiber/fiber/v2"

	"threadhub/internal/controllers"
)

func AuthRoutes(app *fiber.App, h *controllers.AuthHandler) {
	auth := app.Group("/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)
}
