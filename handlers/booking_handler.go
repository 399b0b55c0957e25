package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
	"github.com/shaq-bracu/course-tutor-app/notifications"
	"github.com/shaq-bracu/course-tutor-app/services"
	"github.com/shaq-bracu/course-tutor-app/utils"
	"github.com/shaq-bracu/course-tutor-app/websocket"
)

var (
	errBookingConflict = errors.New("the requested time overlaps an existing booking")
	errOutsideHours    = errors.New("the tutor is not available at the requested time")
)

type CreateBookingRequest struct {
	TutorID         string `json:"tutor_id" validate:"required,uuid"`
	CourseID        string `json:"course_id" validate:"required,uuid"`
	SessionDate     string `json:"session_date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required"`
	EndTime         string `json:"end_time" validate:"required"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,min=30,max=480"`
	PaymentMethod   string `json:"payment_method" validate:"required,oneof=card bkash nagad cash"`
	Notes           string `json:"notes,omitempty"`
	Objectives      string `json:"objectives,omitempty"`
}

func CreateBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tutorID, _ := uuid.Parse(req.TutorID)
	courseID, _ := uuid.Parse(req.CourseID)
	sessionDate, _ := time.Parse("2006-01-02", req.SessionDate)

	startMin, err := services.ParseMinuteOfDay(req.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_time: " + err.Error()})
	}
	endMin, err := services.ParseMinuteOfDay(req.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_time: " + err.Error()})
	}
	if endMin <= startMin {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time"})
	}
	if endMin-startMin != req.DurationMinutes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "duration_minutes does not match the requested interval"})
	}
	sessionStart := sessionDate.Add(time.Duration(startMin) * time.Minute)
	if sessionStart.Before(time.Now().UTC()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot book a session in the past"})
	}

	var tutor models.Tutor
	if err := database.DB.Preload("User").First(&tutor, "user_id = ?", tutorID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}
	if tutor.Status != "active" || !tutor.User.IsActive {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "This tutor is not approved for bookings"})
	}

	var course models.Course
	if err := database.DB.First(&course, "id = ? AND tutor_id = ? AND is_active = ?", courseID, tutorID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found for this tutor"})
	}

	var windows []models.TutorAvailability
	database.DB.Where("tutor_id = ?", tutorID).Find(&windows)
	window, ok := services.ResolveDayWindow(windows, sessionDate)
	if !ok || startMin < window.Start || endMin > window.End {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": errOutsideHours.Error()})
	}

	meetingLink := utils.GenerateMeetingLink()
	booking := models.Booking{
		StudentID:       studentID,
		TutorID:         tutorID,
		CourseID:        courseID,
		SessionDate:     sessionDate,
		StartMinute:     startMin,
		EndMinute:       endMin,
		DurationMinutes: req.DurationMinutes,
		TotalAmount:     services.SessionPrice(tutor.HourlyRate, req.DurationMinutes),
		Currency:        tutor.Currency,
		Status:          services.BookingStatusPending,
		PaymentStatus:   services.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		MeetingLink:     &meetingLink,
	}
	if req.Notes != "" {
		booking.Notes = &req.Notes
	}
	if req.Objectives != "" {
		booking.Objectives = &req.Objectives
	}

	// Check-and-insert must be atomic: the tutor lock serializes local
	// requests, the row lock on the tutor profile serializes instances.
	services.BookingLocks.Lock(tutorID)
	defer services.BookingLocks.Unlock(tutorID)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var lockedTutor models.Tutor
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&lockedTutor, "user_id = ?", tutorID).Error; err != nil {
			return err
		}

		var overlapping int64
		if err := tx.Model(&models.Booking{}).
			Where("tutor_id = ? AND session_date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
				tutorID, sessionDate, services.BlockingStatuses, endMin, startMin).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return errBookingConflict
		}

		return tx.Create(&booking).Error
	})
	if err != nil {
		if errors.Is(err, errBookingConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errBookingConflict.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create booking"})
	}

	go notifications.SendEmail(tutor.User.FullName, tutor.User.Email, "New Booking Request",
		fmt.Sprintf("<h1>New Booking Request</h1><p>A student has requested a %s session on %s at %s. Please confirm or cancel it from your dashboard.</p>",
			course.Title, req.SessionDate, req.StartTime))
	websocket.PushBookingEvent("booking.created", booking.ID, "A new session was requested", tutorID)

	return c.Status(fiber.StatusCreated).JSON(booking)
}

func ConfirmBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if booking.TutorID != tutorID {
			return errNotYourBooking
		}
		next, err := services.NextStatus(booking.Status, services.CommandConfirm)
		if err != nil {
			return err
		}
		booking.Status = next
		return tx.Save(&booking).Error
	})
	if err != nil {
		return bookingMutationError(c, err, "Failed to confirm booking")
	}

	var student models.User
	if database.DB.First(&student, "id = ?", booking.StudentID).Error == nil {
		go notifications.SendEmail(student.FullName, student.Email, "Booking Confirmed",
			"<h1>Booking Confirmed</h1><p>Your tutor has confirmed the session. The meeting link is available on your dashboard.</p>")
	}
	websocket.PushBookingEvent("booking.confirmed", booking.ID, "Your booking was confirmed", booking.StudentID)

	return c.JSON(booking)
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func CancelBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req CancelBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	var refund float64
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if booking.StudentID != actorID && booking.TutorID != actorID {
			return errNotYourBooking
		}
		next, err := services.NextStatus(booking.Status, services.CommandCancel)
		if err != nil {
			return err
		}

		refund = services.RefundAmount(booking.TotalAmount, booking.SessionStart(), time.Now().UTC())
		booking.Status = next
		booking.CancelReason = &req.Reason
		booking.CancelledBy = &actorID
		booking.RefundAmount = &refund
		if refund > 0 {
			booking.PaymentStatus = services.PaymentStatusRefunded
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return bookingMutationError(c, err, "Failed to cancel booking")
	}

	counterpart := booking.TutorID
	if actorID == booking.TutorID {
		counterpart = booking.StudentID
	}
	var other models.User
	if database.DB.First(&other, "id = ?", counterpart).Error == nil {
		go notifications.SendEmail(other.FullName, other.Email, "Booking Cancelled",
			fmt.Sprintf("<h1>Booking Cancelled</h1><p>The session scheduled for %s has been cancelled. Reason: %s</p>",
				booking.SessionDate.Format("2006-01-02"), req.Reason))
	}
	websocket.PushBookingEvent("booking.cancelled", booking.ID, "The booking was cancelled", counterpart)

	return c.JSON(fiber.Map{"booking": booking, "refund_amount": refund})
}

func CompleteBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if booking.TutorID != tutorID {
			return errNotYourBooking
		}
		next, err := services.NextStatus(booking.Status, services.CommandComplete)
		if err != nil {
			return err
		}
		booking.Status = next
		return tx.Save(&booking).Error
	})
	if err != nil {
		return bookingMutationError(c, err, "Failed to complete booking")
	}

	go services.CheckAndGenerateCertificate(booking)
	websocket.PushBookingEvent("booking.completed", booking.ID, "The session was marked complete", booking.StudentID)

	return c.JSON(booking)
}

type RescheduleBookingRequest struct {
	NewDate      string `json:"new_date" validate:"required,datetime=2006-01-02"`
	NewStartTime string `json:"new_start_time" validate:"required"`
	NewEndTime   string `json:"new_end_time" validate:"required"`
	Reason       string `json:"reason" validate:"required"`
}

func RescheduleBooking(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req RescheduleBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	newDate, _ := time.Parse("2006-01-02", req.NewDate)
	newStart, err := services.ParseMinuteOfDay(req.NewStartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid new_start_time: " + err.Error()})
	}
	newEnd, err := services.ParseMinuteOfDay(req.NewEndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid new_end_time: " + err.Error()})
	}
	if newEnd <= newStart {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "End time must be after start time"})
	}
	if newDate.Add(time.Duration(newStart) * time.Minute).Before(time.Now().UTC()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot reschedule into the past"})
	}

	var probe models.Booking
	if err := database.DB.Select("tutor_id").First(&probe, "id = ?", bookingID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	services.BookingLocks.Lock(probe.TutorID)
	defer services.BookingLocks.Unlock(probe.TutorID)

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if booking.StudentID != actorID && booking.TutorID != actorID {
			return errNotYourBooking
		}
		if !services.CanReschedule(booking.Status) {
			return services.ErrInvalidTransition
		}

		var windows []models.TutorAvailability
		if err := tx.Where("tutor_id = ?", booking.TutorID).Find(&windows).Error; err != nil {
			return err
		}
		window, ok := services.ResolveDayWindow(windows, newDate)
		if !ok || newStart < window.Start || newEnd > window.End {
			return errOutsideHours
		}

		var overlapping int64
		if err := tx.Model(&models.Booking{}).
			Where("tutor_id = ? AND session_date = ? AND id <> ? AND status IN ? AND start_minute < ? AND end_minute > ?",
				booking.TutorID, newDate, booking.ID, services.BlockingStatuses, newEnd, newStart).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return errBookingConflict
		}

		record := models.RescheduleRecord{
			BookingID:      booking.ID,
			OldDate:        booking.SessionDate,
			NewDate:        newDate,
			OldStartMinute: booking.StartMinute,
			NewStartMinute: newStart,
			Reason:         req.Reason,
			RequestedBy:    actorID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		booking.SessionDate = newDate
		booking.StartMinute = newStart
		booking.EndMinute = newEnd
		booking.DurationMinutes = newEnd - newStart
		return tx.Save(&booking).Error
	})
	if err != nil {
		if errors.Is(err, errOutsideHours) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": errOutsideHours.Error()})
		}
		if errors.Is(err, errBookingConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": errBookingConflict.Error()})
		}
		return bookingMutationError(c, err, "Failed to reschedule booking")
	}

	counterpart := booking.TutorID
	if actorID == booking.TutorID {
		counterpart = booking.StudentID
	}
	var other models.User
	if database.DB.First(&other, "id = ?", counterpart).Error == nil {
		go notifications.SendEmail(other.FullName, other.Email, "Booking Rescheduled",
			fmt.Sprintf("<h1>Booking Rescheduled</h1><p>The session was moved to %s at %s.</p>", req.NewDate, req.NewStartTime))
	}
	websocket.PushBookingEvent("booking.rescheduled", booking.ID, "The booking was rescheduled", counterpart)

	return c.JSON(booking)
}

type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func AddFeedback(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var req FeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if err := services.ApplyFeedback(&booking, actorID, req.Rating, req.Comment, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		if errors.Is(err, services.ErrFeedbackNotParty) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, services.ErrFeedbackNotCompleted) || errors.Is(err, services.ErrFeedbackBadRating) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save feedback"})
	}

	return c.JSON(booking)
}

// JoinSession records the participant's attendance timestamp and hands back
// the meeting link.
func JoinSession(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	actorID, _ := uuid.Parse(claims["user_id"].(string))
	bookingID := c.Params("bookingId")

	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if booking.StudentID != actorID && booking.TutorID != actorID {
			return errNotYourBooking
		}
		if booking.Status != services.BookingStatusConfirmed && booking.Status != services.BookingStatusInProgress {
			return services.ErrInvalidTransition
		}

		now := time.Now().UTC()
		if actorID == booking.StudentID && booking.StudentJoinedAt == nil {
			booking.StudentJoinedAt = &now
		}
		if actorID == booking.TutorID && booking.TutorJoinedAt == nil {
			booking.TutorJoinedAt = &now
		}
		return tx.Save(&booking).Error
	})
	if err != nil {
		return bookingMutationError(c, err, "Failed to join session")
	}

	return c.JSON(fiber.Map{"meeting_link": booking.MeetingLink})
}

func GetMyBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var bookings []models.Booking
	database.DB.
		Preload("Tutor").
		Preload("Course").
		Preload("RescheduleHistory").
		Where("student_id = ?", studentID).
		Order("session_date desc, start_minute desc").
		Find(&bookings)

	return c.JSON(bookings)
}

func GetMyTutorBookings(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	tutorID, _ := uuid.Parse(claims["user_id"].(string))

	var bookings []models.Booking
	database.DB.
		Preload("Student").
		Preload("Course").
		Preload("RescheduleHistory").
		Where("tutor_id = ?", tutorID).
		Order("session_date desc, start_minute desc").
		Find(&bookings)

	return c.JSON(bookings)
}

var errNotYourBooking = errors.New("you are not a participant of this booking")

func bookingMutationError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	case errors.Is(err, errNotYourBooking):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": errNotYourBooking.Error()})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrInvalidTransition.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}
