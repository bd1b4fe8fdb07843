package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatChips(t *testing.T) {
	tests := []struct {
		amount   int64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{25000, "25,000"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatChips(tt.amount))
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{30 * time.Second, "< 1m"},
		{time.Minute, "1m"},
		{90 * time.Minute, "1h 30m"},
		{26*time.Hour + 5*time.Minute, "1d 2h 5m"},
		{48 * time.Hour, "2d"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatDuration(tt.d))
	}
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "16.7%", FormatPct(1.0/6.0))
	assert.Equal(t, "100.0%", FormatPct(1))
}
