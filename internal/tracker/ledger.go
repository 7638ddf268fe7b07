package tracker

import (
	"math"
	"strconv"
	"strings"

	"github.com/deenworks/qada/internal/model"
)

// parseCount turns raw user input into a usable count. Anything that is not
// a non-negative integer coerces to 0; mutations never reject input.
func parseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SetTotal replaces the outstanding backlog for one prayer.
func SetTotal(t *model.Tracker, name model.PrayerName, raw string) {
	c := t.Prayers[name]
	c.TotalQada = parseCount(raw)
	t.Prayers[name] = c
}

// SetWeeklyTarget replaces the weekly goal for one prayer. 0 means no target.
func SetWeeklyTarget(t *model.Tracker, name model.PrayerName, raw string) {
	c := t.Prayers[name]
	c.WeeklyTarget = parseCount(raw)
	t.Prayers[name] = c
}

// RecordCompletion logs count completed Qada prayers: the backlog shrinks
// (never below zero) and the weekly progress grows by the same count.
// Overshoot past the weekly target accumulates; only display is capped.
// A zero or unparsable count is a no-op.
func RecordCompletion(t *model.Tracker, name model.PrayerName, raw string) bool {
	count := parseCount(raw)
	if count == 0 {
		return false
	}
	c := t.Prayers[name]
	c.TotalQada -= count
	if c.TotalQada < 0 {
		c.TotalQada = 0
	}
	c.CompletedThisWeek += count
	t.Prayers[name] = c
	return true
}

// Progress returns display progress toward the weekly target as a 0..100
// percentage, rounded, capped at 100. No target means 0.
func Progress(t *model.Tracker, name model.PrayerName) int {
	c := t.Prayers[name]
	if c.WeeklyTarget == 0 {
		return 0
	}
	pct := int(math.Round(100 * float64(c.CompletedThisWeek) / float64(c.WeeklyTarget)))
	if pct > 100 {
		return 100
	}
	return pct
}

// IsBehindTarget reports whether the user should be warned: two days or less
// remain and the target for this prayer has not been met.
func IsBehindTarget(t *model.Tracker, name model.PrayerName, daysLeft int) bool {
	c := t.Prayers[name]
	return daysLeft <= 2 && c.WeeklyTarget > 0 && c.CompletedThisWeek < c.WeeklyTarget
}
