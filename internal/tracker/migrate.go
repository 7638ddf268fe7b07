package tracker

import (
	"time"

	"github.com/deenworks/qada/internal/model"
)

// MigrateKeys reconciles a loaded prayer map with the current-generation key
// set. A map that already carries all five current names passes through
// untouched, stray legacy keys included. Otherwise every legacy key is renamed
// to its current counterpart with counters preserved, and any current name
// still missing defaults to zeroed counters.
func MigrateKeys(prayers map[model.PrayerName]model.PrayerCounters) map[model.PrayerName]model.PrayerCounters {
	if prayers == nil {
		prayers = make(map[model.PrayerName]model.PrayerCounters)
	}

	complete := true
	for _, name := range model.PrayerNames {
		if _, ok := prayers[name]; !ok {
			complete = false
			break
		}
	}
	if complete {
		return prayers
	}

	migrated := make(map[model.PrayerName]model.PrayerCounters, len(model.PrayerNames))
	for legacy, current := range model.LegacyPrayerNames {
		if counters, ok := prayers[legacy]; ok {
			migrated[current] = counters
		}
	}
	for _, name := range model.PrayerNames {
		if counters, ok := prayers[name]; ok {
			migrated[name] = counters
		} else if _, ok := migrated[name]; !ok {
			migrated[name] = model.PrayerCounters{}
		}
	}
	return migrated
}

// Sanitize turns a loaded document into a ledger that honors the invariants:
// exactly the five current names as keys, all counters non-negative, and a
// usable cycle start. Records that predate the cycle field start a fresh
// cycle at now.
func Sanitize(t *model.Tracker, now time.Time) *model.Tracker {
	prayers := MigrateKeys(t.Prayers)

	out := model.NewTracker(now)
	if !t.WeekStartDate.IsZero() {
		out.WeekStartDate = t.WeekStartDate
	}
	for _, name := range model.PrayerNames {
		c := prayers[name]
		if c.TotalQada < 0 {
			c.TotalQada = 0
		}
		if c.WeeklyTarget < 0 {
			c.WeeklyTarget = 0
		}
		if c.CompletedThisWeek < 0 {
			c.CompletedThisWeek = 0
		}
		out.Prayers[name] = c
	}
	return out
}
