package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shaq-bracu/course-tutor-app/handlers"
	"github.com/shaq-bracu/course-tutor-app/middleware"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/tutors", handlers.ListActiveTutors)
	api.Get("/tutors/:tutorId", handlers.GetTutorProfile)
	api.Get("/tutors/:tutorId/courses", handlers.ListTutorCourses)
	api.Get("/tutors/:tutorId/availability", handlers.GetTutorAvailability)

	tutor := api.Group("/tutor", middleware.Protected())
	tutor.Post("/apply", handlers.ApplyToBeATutor)
	tutor.Get("/bookings", middleware.TutorRequired(), handlers.GetMyTutorBookings)
	tutor.Get("/reviews/me", middleware.TutorRequired(), handlers.GetMyTutorReviews)

	profile := tutor.Group("/profile", middleware.TutorRequired())
	profile.Get("/me", handlers.GetMyTutorProfile)
	profile.Put("/me", handlers.UpdateMyTutorProfile)

	availability := tutor.Group("/availability", middleware.TutorRequired())
	availability.Put("", handlers.SetWeeklyAvailability)
	availability.Get("/me", handlers.GetMyAvailability)

	courses := tutor.Group("/courses", middleware.TutorRequired())
	courses.Post("", handlers.CreateCourse)
	courses.Delete("/:courseId", handlers.DeactivateCourse)
}
