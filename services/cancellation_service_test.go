package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefundAmount(t *testing.T) {
	now := time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		hoursAhead float64
		total      float64
		want       float64
	}{
		{"25 hours notice is fully refunded", 25, 500, 500},
		{"10 hours notice refunds half", 10, 500, 250},
		{"1 hour notice refunds nothing", 1, 500, 0},
		{"exactly 24 hours falls into the half tier", 24, 500, 250},
		{"exactly 2 hours falls into the zero tier", 2, 500, 0},
		{"session already started", -1, 500, 0},
		{"half refund rounds to cents", 10, 375, 187.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := now.Add(time.Duration(tc.hoursAhead * float64(time.Hour)))
			assert.Equal(t, tc.want, RefundAmount(tc.total, start, now))
		})
	}
}
