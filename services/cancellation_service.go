package services

import (
	"math"
	"time"
)

const (
	fullRefundNoticeHours = 24
	halfRefundNoticeHours = 2
)

// RefundAmount applies the tiered cancellation policy: full refund with more
// than 24 hours' notice, half with more than 2, otherwise nothing.
func RefundAmount(totalAmount float64, sessionStart, now time.Time) float64 {
	hoursUntil := sessionStart.Sub(now).Hours()
	switch {
	case hoursUntil > fullRefundNoticeHours:
		return totalAmount
	case hoursUntil > halfRefundNoticeHours:
		return math.Round(totalAmount*50) / 100
	default:
		return 0
	}
}
