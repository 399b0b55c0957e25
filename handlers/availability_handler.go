package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
	"github.com/shaq-bracu/course-tutor-app/services"
)

// GetTutorAvailability returns the bookable slots for one tutor on one date:
// the weekday window minus every confirmed or in-progress session.
func GetTutorAvailability(c *fiber.Ctx) error {
	tutorID, err := uuid.Parse(c.Params("tutorId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor id"})
	}
	date, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date query parameter must be YYYY-MM-DD"})
	}

	var tutor models.Tutor
	if err := database.DB.Preload("User").First(&tutor, "user_id = ? AND status = ?", tutorID, "active").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Active tutor not found"})
	}

	var windows []models.TutorAvailability
	database.DB.Where("tutor_id = ?", tutorID).Find(&windows)

	dayOfWeek := date.Weekday().String()
	window, ok := services.ResolveDayWindow(windows, date)
	if !ok {
		return c.JSON(fiber.Map{
			"day_of_week": dayOfWeek,
			"hourly_rate": tutor.HourlyRate,
			"currency":    tutor.Currency,
			"slots":       []services.Slot{},
			"message":     "Tutor is not available on " + dayOfWeek,
		})
	}

	var active []models.Booking
	database.DB.
		Where("tutor_id = ? AND session_date = ? AND status IN ?", tutorID, date, services.ActiveStatuses).
		Find(&active)

	slots := services.PartitionSlots(window, services.BusyIntervals(active), services.SlotGranularityMinutes)

	return c.JSON(fiber.Map{
		"day_of_week": dayOfWeek,
		"hourly_rate": tutor.HourlyRate,
		"currency":    tutor.Currency,
		"slots":       slots,
	})
}

type WeeklyWindowRequest struct {
	Weekday   string `json:"weekday" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type SetAvailabilityRequest struct {
	Windows []WeeklyWindowRequest `json:"windows" validate:"required,dive"`
}

// SetWeeklyAvailability replaces the tutor's recurring schedule wholesale.
// One window per weekday; a weekday absent from the payload becomes a day off.
func SetWeeklyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var req SetAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	seen := make(map[string]bool)
	rows := make([]models.TutorAvailability, 0, len(req.Windows))
	for _, w := range req.Windows {
		start, err := services.ParseMinuteOfDay(w.StartTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": w.Weekday + ": invalid start_time"})
		}
		end, err := services.ParseMinuteOfDay(w.EndTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": w.Weekday + ": invalid end_time"})
		}
		if end <= start {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": w.Weekday + ": start time must be before end time"})
		}
		if seen[w.Weekday] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": w.Weekday + " appears more than once"})
		}
		seen[w.Weekday] = true
		rows = append(rows, models.TutorAvailability{
			TutorID:     tutorID,
			Weekday:     w.Weekday,
			StartMinute: start,
			EndMinute:   end,
		})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tutor_id = ?", tutorID).Delete(&models.TutorAvailability{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update availability"})
	}

	return c.JSON(rows)
}

func GetMyAvailability(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID := claims["user_id"].(string)

	var windows []models.TutorAvailability
	database.DB.Where("tutor_id = ?", tutorID).Find(&windows)

	return c.JSON(windows)
}
