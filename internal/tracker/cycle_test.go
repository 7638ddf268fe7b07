package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deenworks/qada/internal/calendar"
	"github.com/deenworks/qada/internal/model"
)

func TestResetCycle(t *testing.T) {
	tr := newTestTracker()
	SetTotal(tr, model.Subuh, "10")
	SetWeeklyTarget(tr, model.Subuh, "5")
	RecordCompletion(tr, model.Subuh, "3")
	SetWeeklyTarget(tr, model.Isyak, "2")
	RecordCompletion(tr, model.Isyak, "2")

	resetAt := tr.WeekStartDate.Add(8 * 24 * time.Hour)
	ResetCycle(tr, resetAt)

	for _, name := range model.PrayerNames {
		assert.Zero(t, tr.Prayers[name].CompletedThisWeek, "%s weekly progress should reset", name)
	}
	// backlog and targets persist across cycles
	assert.Equal(t, 7, tr.Prayers[model.Subuh].TotalQada)
	assert.Equal(t, 5, tr.Prayers[model.Subuh].WeeklyTarget)
	assert.Equal(t, 2, tr.Prayers[model.Isyak].WeeklyTarget)
	assert.Equal(t, resetAt, tr.WeekStartDate)
}

func TestResetCycleIdempotentWithinInstant(t *testing.T) {
	tr := newTestTracker()
	resetAt := tr.WeekStartDate.Add(7 * 24 * time.Hour)
	ResetCycle(tr, resetAt)

	// a re-evaluation at the same instant must see a fresh cycle
	assert.False(t, calendar.IsCycleExpired(resetAt, tr.WeekStartDate))
}
