package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePrayerName(t *testing.T) {
	name, ok := ParsePrayerName("subuh")
	assert.True(t, ok)
	assert.Equal(t, Subuh, name)

	name, ok = ParsePrayerName("MAGHRIB")
	assert.True(t, ok)
	assert.Equal(t, Maghrib, name)

	// legacy identifiers are not accepted as input, only migrated on load
	_, ok = ParsePrayerName("Fajr")
	assert.False(t, ok)

	_, ok = ParsePrayerName("")
	assert.False(t, ok)
}

func TestNewTracker(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(now)

	assert.Len(t, tr.Prayers, 5)
	for _, name := range PrayerNames {
		assert.Equal(t, PrayerCounters{}, tr.Prayers[name])
	}
	assert.Equal(t, now, tr.WeekStartDate)
}

func TestCloneIsDeep(t *testing.T) {
	tr := NewTracker(time.Now())
	tr.Prayers[Subuh] = PrayerCounters{TotalQada: 3}

	c := tr.Clone()
	c.Prayers[Subuh] = PrayerCounters{TotalQada: 99}

	assert.Equal(t, 3, tr.Prayers[Subuh].TotalQada)
}
