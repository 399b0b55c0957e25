package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
	"github.com/shaq-bracu/course-tutor-app/notifications"
)

func ListPendingApplications(c *fiber.Ctx) error {
	var applications []models.Tutor
	database.DB.Preload("User").Where("status = ?", "pending").Find(&applications)

	return c.JSON(applications)
}

type ManageApplicationRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

func ManageApplication(c *fiber.Ctx) error {
	tutorID := c.Params("tutorId")

	var req ManageApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var tutor models.Tutor
	if err := database.DB.Preload("User").First(&tutor, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Application not found"})
	}
	if tutor.Status != "pending" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Application has already been processed"})
	}

	if req.Decision == "approve" {
		tutor.Status = "active"
		tutor.User.Role = "tutor"
		if err := database.DB.Save(&tutor.User).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user role"})
		}
		go notifications.SendEmail(tutor.User.FullName, tutor.User.Email, "Application Approved",
			"<h1>Congratulations!</h1><p>Your tutor application has been approved. You can now publish courses and set your weekly availability.</p>")
	} else {
		tutor.Status = "rejected"
		go notifications.SendEmail(tutor.User.FullName, tutor.User.Email, "Application Update",
			"<p>Unfortunately your tutor application was not approved at this time.</p>")
	}

	if err := database.DB.Save(&tutor).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update application"})
	}

	return c.JSON(tutor)
}

func GetAllUsers(c *fiber.Ctx) error {
	var users []models.User
	database.DB.Order("created_at desc").Find(&users)

	return c.JSON(users)
}

func ToggleUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = !user.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}

	return c.JSON(fiber.Map{"id": user.ID, "is_active": user.IsActive})
}

func AdminGetAllBookings(c *fiber.Ctx) error {
	var bookings []models.Booking
	query := database.DB.Preload("Student").Preload("Tutor").Preload("Course")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	query.Order("session_date desc, start_minute desc").Limit(200).Find(&bookings)

	return c.JSON(bookings)
}
