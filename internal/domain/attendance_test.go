package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShiftHoursRoundsToTwoDecimals(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		clockOut time.Time
		want     float64
	}{
		{start.Add(8 * time.Hour), 8.0},
		{start.Add(7*time.Hour + 37*time.Minute), 7.62},
		{start.Add(30 * time.Minute), 0.5},
		{start.Add(10 * time.Second), 0.0},
		{start, 0.0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, ShiftHours(start, tc.clockOut), 0.001)
	}
}

func TestClockTokenExpired(t *testing.T) {
	now := time.Now().UTC()
	token := ClockToken{ExpiresAt: now.Add(time.Minute)}

	assert.False(t, token.Expired(now))
	assert.True(t, token.Expired(now.Add(2*time.Minute)))
}
