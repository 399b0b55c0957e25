package services

import "math"

// SessionPrice turns the tutor's hourly rate into a session total, rounded
// to the nearest whole unit. The result is snapshotted onto the booking at
// creation; later rate changes never touch existing bookings.
func SessionPrice(hourlyRate float64, durationMinutes int) float64 {
	return math.Round(hourlyRate * float64(durationMinutes) / 60)
}
