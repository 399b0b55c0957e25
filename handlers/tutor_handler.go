package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
	"github.com/shaq-bracu/course-tutor-app/services"
)

type TutorApplicationRequest struct {
	Headline   string  `json:"headline" validate:"required"`
	Bio        string  `json:"bio" validate:"required"`
	HourlyRate float64 `json:"hourly_rate" validate:"required,gt=0"`
	Currency   string  `json:"currency" validate:"required,oneof=BDT USD"`
}

func ApplyToBeATutor(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var req TutorApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var existing models.Tutor
	err := database.DB.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "You have already submitted an application."})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	application := models.Tutor{
		UserID:     userID,
		Headline:   &req.Headline,
		Bio:        &req.Bio,
		HourlyRate: req.HourlyRate,
		Currency:   req.Currency,
	}
	if err := database.DB.Create(&application).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create application"})
	}

	return c.Status(fiber.StatusCreated).JSON(application)
}

type UpdateTutorProfileRequest struct {
	Headline   *string  `json:"headline"`
	Bio        *string  `json:"bio"`
	HourlyRate *float64 `json:"hourly_rate" validate:"omitempty,gt=0"`
}

// UpdateMyTutorProfile edits the tutor profile. A rate change only affects
// bookings created afterwards; existing amounts were snapshotted.
func UpdateMyTutorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var req UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.Tutor
	if err := database.DB.First(&tutor, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	if req.Headline != nil {
		tutor.Headline = req.Headline
	}
	if req.Bio != nil {
		tutor.Bio = req.Bio
	}
	if req.HourlyRate != nil {
		tutor.HourlyRate = *req.HourlyRate
	}
	if err := database.DB.Save(&tutor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update profile"})
	}

	return c.JSON(tutor)
}

func GetMyTutorProfile(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var tutor models.Tutor
	if err := database.DB.Preload("User").Preload("Courses").First(&tutor, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}
	return c.JSON(tutor)
}

func GetTutorProfile(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var tutor models.Tutor
	if err := database.DB.Preload("User").Preload("Courses", "is_active = ?", true).
		First(&tutor, "user_id = ? AND status = ?", tutorID, "active").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Active tutor not found"})
	}

	rating := tutorRating(tutor.UserID)

	return c.JSON(fiber.Map{
		"tutor":          tutor,
		"average_rating": rating.Avg,
		"rating_count":   rating.Count,
	})
}

func ListActiveTutors(c *fiber.Ctx) error {
	var tutors []models.Tutor
	query := database.DB.Preload("User").Preload("Courses", "is_active = ?", true).Where("status = ?", "active")

	if subject := c.Query("subject"); subject != "" {
		query = query.
			Joins("JOIN courses ON courses.tutor_id = tutors.user_id").
			Where("courses.subject = ? AND courses.is_active = ?", subject, true).
			Distinct("tutors.*")
	}

	if err := query.Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve tutors"})
	}

	type tutorListing struct {
		models.Tutor
		AverageRating float64 `json:"average_rating"`
		RatingCount   int64   `json:"rating_count"`
	}
	listings := make([]tutorListing, 0, len(tutors))
	for _, t := range tutors {
		r := tutorRating(t.UserID)
		listings = append(listings, tutorListing{Tutor: t, AverageRating: r.Avg, RatingCount: r.Count})
	}

	return c.JSON(listings)
}

type ratingSummary struct {
	Avg   float64
	Count int64
}

// tutorRating aggregates student feedback on completed sessions at read
// time; nothing stores a denormalized average.
func tutorRating(tutorID uuid.UUID) ratingSummary {
	var r ratingSummary
	database.DB.Model(&models.Booking{}).
		Where("tutor_id = ? AND status = ? AND student_rating IS NOT NULL", tutorID, services.BookingStatusCompleted).
		Select("COALESCE(AVG(student_rating), 0) as avg, COUNT(*) as count").
		Scan(&r)
	return r
}

func GetMyTutorReviews(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var reviews []models.Booking
	database.DB.
		Preload("Student").
		Select("id", "student_id", "course_id", "session_date", "student_rating", "student_comment", "student_feedback_at").
		Where("tutor_id = ? AND status = ? AND student_rating IS NOT NULL", tutorID, services.BookingStatusCompleted).
		Order("student_feedback_at desc").
		Find(&reviews)

	return c.JSON(reviews)
}

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=150"`
	Subject     string  `json:"subject" validate:"required"`
	Description *string `json:"description"`
	Level       *string `json:"level"`
}

func CreateCourse(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course := models.Course{
		TutorID:     tutorID,
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Level:       req.Level,
	}
	if err := database.DB.Create(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create course"})
	}

	return c.Status(fiber.StatusCreated).JSON(course)
}

func DeactivateCourse(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))
	courseID := c.Params("courseId")

	var course models.Course
	if err := database.DB.First(&course, "id = ? AND tutor_id = ?", courseID, tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	course.IsActive = false
	if err := database.DB.Save(&course).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deactivate course"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func ListTutorCourses(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var courses []models.Course
	database.DB.Where("tutor_id = ? AND is_active = ?", tutorID, true).Order("title asc").Find(&courses)

	return c.JSON(courses)
}
