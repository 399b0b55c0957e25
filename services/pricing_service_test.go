package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionPrice(t *testing.T) {
	cases := []struct {
		name    string
		rate    float64
		minutes int
		want    float64
	}{
		{"one hour at 500", 500, 60, 500},
		{"ninety minutes", 500, 90, 750},
		{"half hour", 500, 30, 250},
		{"forty-five minutes", 500, 45, 375},
		{"rounds up", 333, 50, 278},  // 277.5 → 278
		{"rounds down", 200, 40, 133}, // 133.33 → 133
		{"zero rate", 0, 60, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SessionPrice(tc.rate, tc.minutes))
		})
	}
}
