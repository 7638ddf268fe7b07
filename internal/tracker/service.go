package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/deenworks/qada/internal/calendar"
	"github.com/deenworks/qada/internal/model"
)

var (
	ErrUnknownPrayer = errors.New("unknown prayer name")
	ErrImportFormat  = errors.New("malformed import document")
)

// SyncStatus is the indicator shown next to the tracker. It only ever
// degrades presentation; a failed remote write never rolls the ledger back.
type SyncStatus string

const (
	StatusLocal    SyncStatus = "local"
	StatusPending  SyncStatus = "pending"
	StatusSynced   SyncStatus = "synced"
	StatusDegraded SyncStatus = "degraded"
)

// LocalCache is the device-local store the ledger round-trips through.
type LocalCache interface {
	LoadTracker(ctx context.Context) (*model.Tracker, error)
	SaveTracker(ctx context.Context, t *model.Tracker) error
	LastSummaryDate(ctx context.Context) (string, error)
	SetLastSummaryDate(ctx context.Context, day string) error
}

// RemoteStore is the per-user document store shared across a user's devices.
type RemoteStore interface {
	LoadTracker(ctx context.Context, username string) (*model.Tracker, error)
	SaveTracker(ctx context.Context, username string, t *model.Tracker) error
}

// Sink delivers the weekly summary.
type Sink interface {
	Send(ctx context.Context, subject, body string) error
}

// Publisher announces remote saves so other devices can reload.
type Publisher interface {
	TrackerUpdated(username string)
}

// Service owns the ledger and coordinates its collaborators. It is the
// single writer: every entry point takes the lock and runs to completion, so
// mutations never interleave. Remote saves and summary sends are detached and
// only ever update the sync status or the notification guard.
type Service struct {
	mu      sync.Mutex
	now     func() time.Time
	tracker *model.Tracker

	cache  LocalCache
	remote RemoteStore
	sink   Sink
	pub    Publisher

	session            string
	skipNextRemoteSave bool
	status             SyncStatus

	detached sync.WaitGroup
}

type Option func(*Service)

// WithClock substitutes the time source, used by tests to step through cycle
// boundaries.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(cache LocalCache, remote RemoteStore, sink Sink, pub Publisher, opts ...Option) *Service {
	s := &Service{
		now:    time.Now,
		cache:  cache,
		remote: remote,
		sink:   sink,
		pub:    pub,
		status: StatusLocal,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = model.NewTracker(s.now())
	return s
}

// Load resolves the ledger by precedence: the remote record for the active
// session wins wholesale, then the local cache, then defaults. A remote
// replacement suppresses the echo save that would otherwise follow.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
}

func (s *Service) loadLocked(ctx context.Context) {
	now := s.now()

	var loaded *model.Tracker
	fromRemote := false
	if s.session != "" {
		remoteTracker, err := s.remote.LoadTracker(ctx, s.session)
		if err != nil {
			log.Warn().Err(err).Str("username", s.session).Msg("remote load failed, falling back to cache")
		} else if remoteTracker != nil {
			loaded = remoteTracker
			fromRemote = true
		}
	}
	if loaded == nil {
		cached, err := s.cache.LoadTracker(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("cache load failed, starting from defaults")
		} else if cached != nil {
			loaded = cached
		}
	}

	if loaded == nil {
		s.tracker = model.NewTracker(now)
	} else {
		s.tracker = Sanitize(loaded, now)
	}
	if fromRemote {
		s.skipNextRemoteSave = true
		s.status = StatusSynced
	}

	s.checkAndMaybeResetCycleLocked()
	s.persistLocked(ctx)
}

// StartSession activates a logged-in session and reloads the ledger under
// remote precedence.
func (s *Service) StartSession(ctx context.Context, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = strings.ToLower(username)
	s.loadLocked(ctx)
}

// EndSession drops the session; the ledger keeps working against the local
// cache only.
func (s *Service) EndSession() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = ""
	s.status = StatusLocal
}

func (s *Service) Session() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// SetTotal replaces the backlog for one prayer from raw user input.
func (s *Service) SetTotal(ctx context.Context, name model.PrayerName, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tracker.Prayers[name]; !ok {
		return ErrUnknownPrayer
	}
	s.checkAndMaybeResetCycleLocked()
	SetTotal(s.tracker, name, raw)
	s.persistLocked(ctx)
	return nil
}

// SetWeeklyTarget replaces the weekly goal for one prayer.
func (s *Service) SetWeeklyTarget(ctx context.Context, name model.PrayerName, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tracker.Prayers[name]; !ok {
		return ErrUnknownPrayer
	}
	s.checkAndMaybeResetCycleLocked()
	SetWeeklyTarget(s.tracker, name, raw)
	s.persistLocked(ctx)
	return nil
}

// RecordCompletion logs cleared Qada prayers. A zero or unparsable count
// leaves the ledger untouched.
func (s *Service) RecordCompletion(ctx context.Context, name model.PrayerName, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tracker.Prayers[name]; !ok {
		return ErrUnknownPrayer
	}
	reset := s.checkAndMaybeResetCycleLocked()
	changed := RecordCompletion(s.tracker, name, raw)
	if reset || changed {
		s.persistLocked(ctx)
	}
	return nil
}

// CheckAndMaybeResetCycle is the explicit expiry probe the host calls on
// every observation of the ledger. Returns whether a reset fired. Re-invoking
// in the same instant finds the fresh cycle start and does nothing.
func (s *Service) CheckAndMaybeResetCycle(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkAndMaybeResetCycleLocked() {
		s.persistLocked(ctx)
		return true
	}
	return false
}

func (s *Service) checkAndMaybeResetCycleLocked() bool {
	now := s.now()
	if !calendar.IsCycleExpired(now, s.tracker.WeekStartDate) {
		return false
	}

	// Summary goes out with the pre-reset snapshot so it reflects the week
	// that just finished. Delivery is detached; its outcome only touches the
	// notification guard.
	snapshot := s.tracker.Clone()
	s.detached.Add(1)
	go func() {
		defer s.detached.Done()
		if err := s.sendWeeklySummary(context.Background(), snapshot, false); err != nil {
			log.Error().Err(err).Msg("weekly summary failed")
		}
	}()

	ResetCycle(s.tracker, now)
	log.Info().Time("week_start", now).Msg("weekly cycle reset")
	return true
}

// persistLocked writes the ledger to the local cache synchronously, then
// schedules a remote save when a session is active. The local cache is never
// behind what the user was shown, even if the remote write fails.
func (s *Service) persistLocked(ctx context.Context) {
	if err := s.cache.SaveTracker(ctx, s.tracker); err != nil {
		log.Error().Err(err).Msg("failed to persist tracker to local cache")
	}

	// The flag is consumed by this save attempt regardless of outcome,
	// so a load is never echoed back as a save.
	if s.skipNextRemoteSave {
		s.skipNextRemoteSave = false
		return
	}
	if s.session == "" {
		s.status = StatusLocal
		return
	}

	s.status = StatusPending
	username := s.session
	snapshot := s.tracker.Clone()
	s.detached.Add(1)
	go func() {
		defer s.detached.Done()
		saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.remote.SaveTracker(saveCtx, username, snapshot); err != nil {
			log.Error().Err(err).Str("username", username).Msg("remote save failed")
			s.mu.Lock()
			if s.session == username {
				s.status = StatusDegraded
			}
			s.mu.Unlock()
			return
		}
		s.mu.Lock()
		if s.session == username && s.status == StatusPending {
			s.status = StatusSynced
		}
		s.mu.Unlock()
		s.pub.TrackerUpdated(username)
	}()
}

// Flush waits for detached remote saves and summary sends, used on shutdown
// and by tests.
func (s *Service) Flush() {
	s.detached.Wait()
}

// PrayerState is one row of the rendered ledger.
type PrayerState struct {
	Name     model.PrayerName
	Counters model.PrayerCounters
	Progress int
	Behind   bool
}

// State is the full view the presentation layer renders.
type State struct {
	Prayers       []PrayerState
	WeekStartDate time.Time
	DaysLeft      int
	Session       string
	SyncStatus    SyncStatus
}

// State observes the ledger; observation itself can roll an expired cycle.
func (s *Service) State(ctx context.Context) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkAndMaybeResetCycleLocked() {
		s.persistLocked(ctx)
	}

	daysLeft := calendar.DaysLeftInCycle(s.now(), s.tracker.WeekStartDate)
	out := State{
		Prayers:       make([]PrayerState, 0, len(model.PrayerNames)),
		WeekStartDate: s.tracker.WeekStartDate,
		DaysLeft:      daysLeft,
		Session:       s.session,
		SyncStatus:    s.status,
	}
	for _, name := range model.PrayerNames {
		out.Prayers = append(out.Prayers, PrayerState{
			Name:     name,
			Counters: s.tracker.Prayers[name],
			Progress: Progress(s.tracker, name),
			Behind:   IsBehindTarget(s.tracker, name, daysLeft),
		})
	}
	return out
}

type importDoc struct {
	Prayers       map[model.PrayerName]model.PrayerCounters `json:"prayers"`
	WeekStartDate *time.Time                                `json:"weekStartDate"`
}

// Import applies a user-supplied document. Each field present independently
// overwrites the corresponding ledger field; a parse failure leaves the
// ledger untouched. Like any wholesale external replacement, the echo save to
// the remote store is suppressed.
func (s *Service) Import(ctx context.Context, data []byte) error {
	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if doc.Prayers == nil && doc.WeekStartDate == nil {
		return nil
	}
	if doc.Prayers != nil {
		imported := &model.Tracker{Prayers: doc.Prayers, WeekStartDate: s.tracker.WeekStartDate}
		s.tracker.Prayers = Sanitize(imported, s.now()).Prayers
	}
	if doc.WeekStartDate != nil {
		s.tracker.WeekStartDate = *doc.WeekStartDate
	}

	s.skipNextRemoteSave = true
	s.checkAndMaybeResetCycleLocked()
	s.persistLocked(ctx)
	return nil
}

// Export serializes the ledger as a downloadable document named with the
// current date.
func (s *Service) Export(ctx context.Context) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.checkAndMaybeResetCycleLocked() {
		s.persistLocked(ctx)
	}

	data, err := json.MarshalIndent(s.tracker, "", "  ")
	if err != nil {
		return "", nil, err
	}
	filename := fmt.Sprintf("qada-export-%s.json", s.now().Format("2006-01-02"))
	return filename, data, nil
}
