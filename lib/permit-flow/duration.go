package permitflow

import (
	"math"
	"time"
)

const MaxWorkDuration = 5

// WorkDuration counts calendar days of work, both ends included.
func WorkDuration(entry, exit time.Time) int {
	days := math.Ceil(exit.Sub(entry).Hours() / 24)
	return int(days) + 1
}

func ValidateDuration(entry, exit time.Time) (int, error) {
	if entry.IsZero() || exit.IsZero() {
		return 0, NewError(CodeValidation, "Entry and exit dates are required")
	}
	if exit.Before(entry) {
		return 0, NewError(CodeValidation, "Exit date cannot be before entry date")
	}
	duration := WorkDuration(entry, exit)
	if duration > MaxWorkDuration {
		return duration, NewError(CodeValidation, "Request cannot exceed %d days", MaxWorkDuration)
	}
	return duration, nil
}
