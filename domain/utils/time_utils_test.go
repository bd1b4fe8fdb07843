package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodStartAt(t *testing.T) {
	tests := []struct {
		name      string
		resetHour int
		now       time.Time
		expected  time.Time
	}{
		{
			name:      "after today's reset",
			resetHour: 14,
			now:       time.Date(2025, 6, 15, 18, 30, 0, 0, time.UTC),
			expected:  time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:      "before today's reset uses yesterday",
			resetHour: 14,
			now:       time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
			expected:  time.Date(2025, 6, 14, 14, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly at the reset",
			resetHour: 14,
			now:       time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
			expected:  time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name:      "midnight reset",
			resetHour: 0,
			now:       time.Date(2025, 6, 15, 23, 59, 0, 0, time.UTC),
			expected:  time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "non-UTC input normalized",
			resetHour: 14,
			now:       time.Date(2025, 6, 15, 20, 0, 0, 0, time.FixedZone("X", 4*3600)), // 16:00 UTC
			expected:  time.Date(2025, 6, 15, 14, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PeriodStartAt(tt.resetHour, tt.now))
		})
	}
}

func TestGetNextResetTimeIsInTheFuture(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		next := GetNextResetTime(hour)
		assert.True(t, next.After(time.Now().UTC()), "reset hour %d", hour)
		assert.Equal(t, hour, next.Hour())
	}
}
