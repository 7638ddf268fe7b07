package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/model"
)

// MaybeSendWeeklySummary is the manual trigger. With force it bypasses the
// at-most-once-per-day guard.
func (s *Service) MaybeSendWeeklySummary(ctx context.Context, force bool) error {
	s.mu.Lock()
	snapshot := s.tracker.Clone()
	s.mu.Unlock()
	return s.sendWeeklySummary(ctx, snapshot, force)
}

// sendWeeklySummary delivers the per-prayer summary unless one already went
// out today. The guard only advances on successful delivery, so a failed
// attempt does not block a retry.
func (s *Service) sendWeeklySummary(ctx context.Context, snapshot *model.Tracker, force bool) error {
	today := s.now().Format("2006-01-02")
	if !force {
		last, err := s.cache.LastSummaryDate(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("could not read notification guard")
		}
		if last == today {
			log.Debug().Msg("weekly summary already sent today")
			return nil
		}
	}

	subject := fmt.Sprintf("Weekly Qada summary (%s)", today)
	if err := s.sink.Send(ctx, subject, BuildSummaryBody(snapshot)); err != nil {
		return fmt.Errorf("summary not delivered: %w", err)
	}
	if err := s.cache.SetLastSummaryDate(ctx, today); err != nil {
		log.Warn().Err(err).Msg("could not update notification guard")
	}
	return nil
}

// BuildSummaryBody renders one line per prayer plus the full snapshot.
func BuildSummaryBody(t *model.Tracker) string {
	var b strings.Builder
	b.WriteString("This week's progress:\n\n")
	for _, name := range model.PrayerNames {
		c := t.Prayers[name]
		fmt.Fprintf(&b, "%s: %d completed | %d remaining\n", name, c.CompletedThisWeek, c.TotalQada)
	}

	b.WriteString("\nFull snapshot:\n")
	payload, err := json.MarshalIndent(t, "", "  ")
	if err == nil {
		b.Write(payload)
	}
	return b.String()
}
