package utils

import (
	"time"
)

// GetNextResetTime calculates the next daily boundary based on the configured
// reset hour (UTC).
func GetNextResetTime(resetHour int) time.Time {
	now := time.Now().UTC()
	resetTime := time.Date(now.Year(), now.Month(), now.Day(), resetHour, 0, 0, 0, time.UTC)

	// If current time is past today's reset, use tomorrow's
	if now.After(resetTime) || now.Equal(resetTime) {
		resetTime = resetTime.AddDate(0, 0, 1)
	}

	return resetTime
}

// GetCurrentPeriodStart calculates when the current daily period started.
// Daily-stock enforcement counts purchases since this instant.
func GetCurrentPeriodStart(resetHour int) time.Time {
	return PeriodStartAt(resetHour, time.Now().UTC())
}

// PeriodStartAt is GetCurrentPeriodStart for an explicit reference time.
func PeriodStartAt(resetHour int, now time.Time) time.Time {
	now = now.UTC()
	periodStart := time.Date(now.Year(), now.Month(), now.Day(), resetHour, 0, 0, 0, time.UTC)

	// If current time is before today's reset, use yesterday's reset time
	if now.Before(periodStart) {
		periodStart = periodStart.AddDate(0, 0, -1)
	}

	return periodStart
}
