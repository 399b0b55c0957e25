package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	hub "github.com/shaq-bracu/course-tutor-app/websocket"
)

// RequireWebSocketUpgrade stashes the authenticated user id before the
// connection is hijacked; websocket handlers cannot read fiber locals set by
// the JWT middleware after the upgrade.
func RequireWebSocketUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		return fiber.ErrUnauthorized
	}
	c.Locals("ws_user_id", userID)
	return c.Next()
}

// NotificationSocket keeps a connection registered with the hub until the
// client goes away. The server never reads meaningful payloads; the socket
// exists to push booking lifecycle events.
var NotificationSocket = websocket.New(func(conn *websocket.Conn) {
	userID := conn.Locals("ws_user_id").(uuid.UUID)

	client := &hub.Client{UserID: userID, Conn: conn}
	hub.Register <- client
	defer func() {
		hub.Unregister <- client
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
})
