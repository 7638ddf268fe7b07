package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysLeftInCycle(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"cycle just started", 0, 7},
		{"one hour in", time.Hour, 7},
		{"just under one day", 24*time.Hour - time.Second, 7},
		{"exactly one day", 24 * time.Hour, 6},
		{"three and a half days", 84 * time.Hour, 4},
		{"just under seven days", 7*24*time.Hour - time.Minute, 1},
		{"exactly seven days", 7 * 24 * time.Hour, 0},
		{"eight days", 8 * 24 * time.Hour, 0},
		{"way past", 30 * 24 * time.Hour, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := now.Add(-tt.elapsed)
			assert.Equal(t, tt.want, DaysLeftInCycle(now, start))
		})
	}
}

func TestIsCycleExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	// 6.99 elapsed days is still inside the window
	start := now.Add(-time.Duration(6.99 * 24 * float64(time.Hour)))
	assert.False(t, IsCycleExpired(now, start))

	start = now.Add(-7 * 24 * time.Hour)
	assert.True(t, IsCycleExpired(now, start))

	start = now.Add(-10 * 24 * time.Hour)
	assert.True(t, IsCycleExpired(now, start))
}
