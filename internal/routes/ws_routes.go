package routes

import (
	"github.com/gofiber/fiber/v2"

	"threadhub/internal/controllers"
	"threadhub/internal/realtime"
)

func WSRoutes(app *fiber.App, hub *realtime.Hub) {
	app.Get("/ws", controllers.WSUpgrade, controllers.WSHandler(hub))
}
