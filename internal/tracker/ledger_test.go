package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/deenworks/qada/internal/model"
)

func newTestTracker() *model.Tracker {
	return model.NewTracker(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
}

func TestSetTotal(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain number", "42", 42},
		{"zero", "0", 0},
		{"negative clamps to zero", "-5", 0},
		{"non-numeric clamps to zero", "abc", 0},
		{"empty clamps to zero", "", 0},
		{"whitespace tolerated", " 12 ", 12},
		{"decimal clamps to zero", "3.5", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTestTracker()
			SetTotal(tr, model.Subuh, tt.raw)
			assert.Equal(t, tt.want, tr.Prayers[model.Subuh].TotalQada)
		})
	}
}

func TestSetWeeklyTarget(t *testing.T) {
	tr := newTestTracker()
	SetWeeklyTarget(tr, model.Zohor, "7")
	assert.Equal(t, 7, tr.Prayers[model.Zohor].WeeklyTarget)

	SetWeeklyTarget(tr, model.Zohor, "-1")
	assert.Equal(t, 0, tr.Prayers[model.Zohor].WeeklyTarget)
}

func TestRecordCompletion(t *testing.T) {
	tr := newTestTracker()
	SetTotal(tr, model.Asar, "10")

	changed := RecordCompletion(tr, model.Asar, "3")
	assert.True(t, changed)
	assert.Equal(t, 7, tr.Prayers[model.Asar].TotalQada)
	assert.Equal(t, 3, tr.Prayers[model.Asar].CompletedThisWeek)

	// backlog never goes negative even when completions exceed it
	changed = RecordCompletion(tr, model.Asar, "100")
	assert.True(t, changed)
	assert.Equal(t, 0, tr.Prayers[model.Asar].TotalQada)
	assert.Equal(t, 103, tr.Prayers[model.Asar].CompletedThisWeek)
}

func TestRecordCompletionNoOp(t *testing.T) {
	for _, raw := range []string{"0", "", "nope", "-4"} {
		tr := newTestTracker()
		SetTotal(tr, model.Maghrib, "5")
		SetWeeklyTarget(tr, model.Maghrib, "2")
		before := tr.Prayers[model.Maghrib]

		changed := RecordCompletion(tr, model.Maghrib, raw)
		assert.False(t, changed, "input %q should be a no-op", raw)
		assert.Equal(t, before, tr.Prayers[model.Maghrib])
	}
}

func TestProgress(t *testing.T) {
	tr := newTestTracker()

	// no target means no progress
	assert.Equal(t, 0, Progress(tr, model.Isyak))

	SetWeeklyTarget(tr, model.Isyak, "8")
	assert.Equal(t, 0, Progress(tr, model.Isyak))

	RecordCompletion(tr, model.Isyak, "3")
	assert.Equal(t, 38, Progress(tr, model.Isyak)) // 37.5 rounds up

	RecordCompletion(tr, model.Isyak, "5")
	assert.Equal(t, 100, Progress(tr, model.Isyak))

	// overshoot accumulates internally but display caps at 100
	RecordCompletion(tr, model.Isyak, "4")
	assert.Equal(t, 12, tr.Prayers[model.Isyak].CompletedThisWeek)
	assert.Equal(t, 100, Progress(tr, model.Isyak))
}

func TestIsBehindTarget(t *testing.T) {
	tr := newTestTracker()
	SetWeeklyTarget(tr, model.Subuh, "5")
	RecordCompletion(tr, model.Subuh, "2")

	assert.False(t, IsBehindTarget(tr, model.Subuh, 3), "plenty of days left")
	assert.True(t, IsBehindTarget(tr, model.Subuh, 2))
	assert.True(t, IsBehindTarget(tr, model.Subuh, 0))

	RecordCompletion(tr, model.Subuh, "3")
	assert.False(t, IsBehindTarget(tr, model.Subuh, 1), "target met")

	// no target set never warns
	assert.False(t, IsBehindTarget(tr, model.Zohor, 1))
}
