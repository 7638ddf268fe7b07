package tracker

import (
	"time"

	"github.com/deenworks/qada/internal/model"
)

// ResetCycle rolls the ledger into a fresh weekly cycle: weekly progress is
// zeroed for every prayer while backlog and targets carry over, and the cycle
// start moves to now. Calling it again in the same instant finds the cycle
// unexpired and is a no-op at the caller's level.
func ResetCycle(t *model.Tracker, now time.Time) {
	for name, c := range t.Prayers {
		c.CompletedThisWeek = 0
		t.Prayers[name] = c
	}
	t.WeekStartDate = now
}
