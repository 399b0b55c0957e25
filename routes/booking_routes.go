package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shaq-bracu/course-tutor-app/handlers"
	"github.com/shaq-bracu/course-tutor-app/middleware"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", handlers.GetMyBookings)
	booking.Post("", handlers.CreateBooking)
	booking.Post("/:bookingId/cancel", handlers.CancelBooking)
	booking.Post("/:bookingId/reschedule", handlers.RescheduleBooking)
	booking.Post("/:bookingId/feedback", handlers.AddFeedback)
	booking.Post("/:bookingId/join", handlers.JoinSession)

	tutorBooking := api.Group("/tutor/bookings", middleware.Protected(), middleware.TutorRequired())
	tutorBooking.Post("/:bookingId/confirm", handlers.ConfirmBooking)
	tutorBooking.Post("/:bookingId/complete", handlers.CompleteBooking)
}
