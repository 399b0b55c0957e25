package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shaq-bracu/course-tutor-app/handlers"
	"github.com/shaq-bracu/course-tutor-app/middleware"
)

func NotificationRoutes(app *fiber.App) {
	app.Get("/ws/notifications", middleware.Protected(), handlers.RequireWebSocketUpgrade, handlers.NotificationSocket)
}
