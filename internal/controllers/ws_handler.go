package controllers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"threadhub/internal/realtime"
)

// WSUpgrade gates the upgrade: only authenticated requests that really are
// websocket upgrades get through, and the user id is pinned into Locals
// before the protocol switch.
func WSUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	uid, ok := c.Locals("user_id").(string)
	if !ok || uid == "" {
		return fiber.ErrUnauthorized
	}
	if _, err := bson.ObjectIDFromHex(uid); err != nil {
		return fiber.ErrUnauthorized
	}
	return c.Next()
}

// WSHandler registers the connection in the hub and holds it open until the
// client goes away. The read loop only drains control frames; this channel
// is push-only.
func WSHandler(hub *realtime.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		uid, _ := conn.Locals("user_id").(string)
		userID, err := bson.ObjectIDFromHex(uid)
		if err != nil {
			conn.Close()
			return
		}

		hub.Register(userID, conn)
		defer hub.Unregister(userID, conn)
		defer conn.Close()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
