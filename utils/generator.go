package utils

import (
	"fmt"

	"github.com/google/uuid"

	config "github.com/shaq-bracu/course-tutor-app/configs"
)

// GenerateMeetingLink builds the stored session room URL. The room is not
// provisioned against any conferencing provider; the link is recorded on the
// booking and handed to both participants.
func GenerateMeetingLink() string {
	base := config.ConfigOr("MEETING_BASE_URL", "https://meet.coursetutor.app")
	return fmt.Sprintf("%s/session/%s", base, uuid.New().String())
}
