package jobs

import (
	"fmt"
	"log"
	"time"

	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
	"github.com/shaq-bracu/course-tutor-app/notifications"
	"github.com/shaq-bracu/course-tutor-app/services"
)

// SendSessionReminders emails both participants of confirmed sessions that
// start roughly an hour from now. The window is five minutes wide so a
// five-minute cron schedule touches each booking exactly once.
func SendSessionReminders() {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nowMinute := now.Hour()*60 + now.Minute()

	var upcoming []models.Booking
	err := database.DB.
		Where("status = ? AND session_date = ? AND start_minute >= ? AND start_minute < ?",
			services.BookingStatusConfirmed, today, nowMinute+60, nowMinute+65).
		Find(&upcoming).Error
	if err != nil {
		log.Printf("Error fetching upcoming sessions for reminders: %v", err)
		return
	}
	if len(upcoming) == 0 {
		return
	}

	for _, booking := range upcoming {
		var student, tutor models.User
		if err := database.DB.First(&student, "id = ?", booking.StudentID).Error; err != nil {
			log.Printf("Error loading student for reminder on booking %s: %v", booking.ID, err)
			continue
		}
		if err := database.DB.First(&tutor, "id = ?", booking.TutorID).Error; err != nil {
			log.Printf("Error loading tutor for reminder on booking %s: %v", booking.ID, err)
			continue
		}

		startAt := services.FormatMinuteOfDay(booking.StartMinute)
		meetingLink := ""
		if booking.MeetingLink != nil {
			meetingLink = *booking.MeetingLink
		}
		subject := "Reminder: your tutoring session starts in 1 hour"
		body := fmt.Sprintf(
			"<h3>Session Reminder</h3><p>Your session is scheduled today at <strong>%s</strong> (UTC).</p><p>Join here: <a href=\"%s\">%s</a></p>",
			startAt, meetingLink, meetingLink,
		)

		go notifications.SendEmail(student.FullName, student.Email, subject, body)
		go notifications.SendEmail(tutor.FullName, tutor.Email, subject, body)
	}

	log.Printf("✅ Sent reminders for %d upcoming session(s)", len(upcoming))
}
