package model

import (
	"strings"
	"time"
)

// PrayerName identifies one of the five daily prayers. The set is fixed;
// order matters for display only.
type PrayerName string

const (
	Subuh   PrayerName = "Subuh"
	Zohor   PrayerName = "Zohor"
	Asar    PrayerName = "Asar"
	Maghrib PrayerName = "Maghrib"
	Isyak   PrayerName = "Isyak"
)

// PrayerNames is the current-generation name set in display order.
var PrayerNames = []PrayerName{Subuh, Zohor, Asar, Maghrib, Isyak}

// LegacyPrayerNames maps the retired Latin-transliteration identifiers to
// their current counterparts. Old cached or synced records may still carry
// these keys.
var LegacyPrayerNames = map[PrayerName]PrayerName{
	"Fajr":    Subuh,
	"Dhuhr":   Zohor,
	"Asr":     Asar,
	"Maghrib": Maghrib,
	"Isha":    Isyak,
}

// ParsePrayerName resolves user-supplied input to a current-generation name,
// case-insensitively.
func ParsePrayerName(s string) (PrayerName, bool) {
	for _, name := range PrayerNames {
		if strings.EqualFold(string(name), s) {
			return name, true
		}
	}
	return "", false
}

// PrayerCounters holds the per-prayer backlog state. All fields are kept
// non-negative by the mutation layer.
type PrayerCounters struct {
	TotalQada         int `json:"totalQada"`
	WeeklyTarget      int `json:"weeklyTarget"`
	CompletedThisWeek int `json:"completedThisWeek"`
}

// Tracker is the full ledger: one counter set per prayer plus the start of
// the current weekly cycle. Prayers always contains exactly the five
// current-generation names as keys.
type Tracker struct {
	Prayers       map[PrayerName]PrayerCounters `json:"prayers"`
	WeekStartDate time.Time                     `json:"weekStartDate"`
}

// NewTracker returns a default ledger with zeroed counters and a cycle
// starting at now.
func NewTracker(now time.Time) *Tracker {
	t := &Tracker{
		Prayers:       make(map[PrayerName]PrayerCounters, len(PrayerNames)),
		WeekStartDate: now,
	}
	for _, name := range PrayerNames {
		t.Prayers[name] = PrayerCounters{}
	}
	return t
}

// Clone returns a deep copy, used for pre-reset snapshots.
func (t *Tracker) Clone() *Tracker {
	c := &Tracker{
		Prayers:       make(map[PrayerName]PrayerCounters, len(t.Prayers)),
		WeekStartDate: t.WeekStartDate,
	}
	for name, counters := range t.Prayers {
		c.Prayers[name] = counters
	}
	return c
}
