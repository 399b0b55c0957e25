package jobs

import (
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shaq-bracu/course-tutor-app/database"
	"github.com/shaq-bracu/course-tutor-app/models"
	"github.com/shaq-bracu/course-tutor-app/services"
)

// UpdateSessionStatuses is the clock-driven part of the lifecycle: confirmed
// sessions whose window has opened become in-progress, and sessions nobody
// joined become no-shows once the window closes. Runs every few minutes via
// cron.
func UpdateSessionStatuses() {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var candidates []models.Booking
	err := database.DB.
		Where("status IN ? AND session_date <= ?", services.BlockingStatuses, today).
		Find(&candidates).Error
	if err != nil {
		log.Printf("Error scanning sessions for status updates: %v", err)
		return
	}

	started, noShows := 0, 0
	for _, candidate := range candidates {
		var cmd services.Command
		switch {
		case now.After(candidate.SessionEnd()) &&
			candidate.StudentJoinedAt == nil && candidate.TutorJoinedAt == nil &&
			candidate.Status != services.BookingStatusInProgress:
			cmd = services.CommandNoShow
		case candidate.Status == services.BookingStatusConfirmed && !now.Before(candidate.SessionStart()):
			cmd = services.CommandStart
		default:
			continue
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			var b models.Booking
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, "id = ?", candidate.ID).Error; err != nil {
				return err
			}
			next, err := services.NextStatus(b.Status, cmd)
			if err != nil {
				// someone transitioned it since the scan, leave it alone
				return nil
			}
			b.Status = next
			return tx.Save(&b).Error
		})
		if err != nil {
			log.Printf("Error updating booking %s: %v", candidate.ID, err)
			continue
		}
		if cmd == services.CommandNoShow {
			noShows++
		} else {
			started++
		}
	}

	if started > 0 || noShows > 0 {
		log.Printf("✅ Session sweep: %d started, %d marked no-show", started, noShows)
	}
}
