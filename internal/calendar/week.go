package calendar

import "time"

// CycleDays is the length of a tracking cycle in whole days.
const CycleDays = 7

// DaysLeftInCycle returns how many whole days remain in the cycle that began
// at start, clamped to 0. A day counts as elapsed only once a full 24h has
// passed, so 6.99 elapsed days still leaves one day remaining.
func DaysLeftInCycle(now, start time.Time) int {
	elapsed := int(now.Sub(start).Hours() / 24)
	left := CycleDays - elapsed
	if left < 0 {
		return 0
	}
	return left
}

// IsCycleExpired reports whether 7 or more full days have elapsed since start.
func IsCycleExpired(now, start time.Time) bool {
	return DaysLeftInCycle(now, start) == 0
}
