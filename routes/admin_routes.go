package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shaq-bracu/course-tutor-app/handlers"
	"github.com/shaq-bracu/course-tutor-app/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/applications/pending", handlers.ListPendingApplications)
	admin.Put("/applications/:tutorId", handlers.ManageApplication)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Put("/:userId/status", handlers.ToggleUserStatus)

	admin.Get("/bookings", handlers.AdminGetAllBookings)
}
