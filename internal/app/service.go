// Package service runs the refresh pipeline and implements the
// dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/hammah12/SalesDash/internal/adapters/source"
	"github.com/hammah12/SalesDash/internal/domain/cohort"
	"github.com/hammah12/SalesDash/internal/domain/forecast"
	"github.com/hammah12/SalesDash/internal/domain/model"
	"github.com/hammah12/SalesDash/internal/domain/normalize"
	"github.com/hammah12/SalesDash/internal/domain/performance"
	"github.com/hammah12/SalesDash/internal/domain/signals"
	"github.com/hammah12/SalesDash/pkg/logger"
	"github.com/hammah12/SalesDash/pkg/metrics"
)

// fetchAdvice is shown alongside the underlying cause whenever a cycle
// fails end to end.
const fetchAdvice = "Failed to load data. Please ensure the base URL and GIDs are correct and the sheets are published to the web as CSV."

const defaultRefreshInterval = 30 * time.Second

// Fetcher retrieves one published table as typed rows.
type Fetcher interface {
	Fetch(ctx context.Context, base, gid string) ([]source.Row, error)
}

// Sources identifies the seven published tables of one spreadsheet.
type Sources struct {
	BaseURL       string `json:"base_url"`
	WeeklyUploads string `json:"weekly_uploads_gid"`
	TalkTime      string `json:"talk_time_gid"`
	Conversion    string `json:"conversion_gid"`
	LeadsGrabbed  string `json:"leads_grabbed_gid"`
	LeadsBehind   string `json:"leads_behind_gid"`
	RepMonthly    string `json:"rep_monthly_gid"`
	RepDaily      string `json:"rep_daily_gid"`
}

// Service owns the periodic refresh cycle and the latest snapshot.
type Service struct {
	mu sync.RWMutex

	fetcher  Fetcher
	sources  Sources
	interval time.Duration
	clock    func() time.Time

	scheduler *cron.Cron
	group     singleflight.Group

	// generation invalidates in-flight cycles when sources change.
	generation uint64
	snapshot   *Snapshot
	lastErr    error

	cyclesRun    uint64
	cyclesFailed uint64
	startedAt    time.Time
	started      bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFetcher sets the table fetcher.
func WithFetcher(f Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithSources sets the spreadsheet base URL and table GIDs.
func WithSources(src Sources) Option {
	return func(s *Service) {
		s.sources = src
	}
}

// WithRefreshInterval sets the cadence of the background refresh.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		fetcher:  source.New(),
		interval: defaultRefreshInterval,
		clock:    time.Now,
		logger:   logger.Noop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start kicks an initial refresh and begins the periodic schedule.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.startedAt = s.clock()
	s.scheduler = cron.New()
	s.mu.Unlock()

	s.logger.Info(ctx, "starting dashboard service",
		logger.Duration("interval", s.interval),
	)

	if _, err := s.scheduler.AddFunc(fmt.Sprintf("@every %s", s.interval), func() {
		if err := s.Refresh(context.Background()); err != nil {
			s.logger.Warn(context.Background(), "scheduled refresh failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	s.scheduler.Start()

	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn(ctx, "initial refresh failed", logger.Error(err))
	}
	return nil
}

// Stop halts the schedule. An in-flight cycle may finish but its result is
// discarded if the sources changed since it began.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Refresh runs one full cycle. Concurrent callers join the in-flight cycle
// rather than starting another.
func (s *Service) Refresh(ctx context.Context) error {
	_, err, _ := s.group.Do("refresh", func() (any, error) {
		return nil, s.runCycle(ctx)
	})
	return err
}

// Snapshot returns the latest published snapshot, nil before the first
// successful cycle.
func (s *Service) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// LastError describes the most recent cycle failure for end users. Empty
// once a cycle succeeds again.
func (s *Service) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr == nil {
		return ""
	}
	return fmt.Sprintf("%s (%v)", fetchAdvice, s.lastErr)
}

// CurrentSources returns the current spreadsheet configuration.
func (s *Service) CurrentSources() Sources {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sources
}

// Reconfigure swaps the spreadsheet sources, drops the now-stale snapshot
// and fetches fresh data synchronously.
func (s *Service) Reconfigure(ctx context.Context, src Sources) error {
	s.mu.Lock()
	s.sources = src
	s.snapshot = nil
	s.lastErr = nil
	s.generation++
	s.mu.Unlock()

	// A cycle already in flight is fetching the old sources and will be
	// discarded by the generation check; forget it so the refresh below
	// starts a fresh cycle instead of joining it.
	s.group.Forget("refresh")

	s.logger.Info(ctx, "sources reconfigured", logger.String("base_url", src.BaseURL))
	return s.Refresh(ctx)
}

// ExportRepMonthly writes the rep monthly table as CSV, with the same
// column names and row order it was ingested with.
func (s *Service) ExportRepMonthly(w io.Writer) error {
	snap := s.Snapshot()
	if snap == nil {
		return ErrNoSnapshot
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Rep Name", "MTD Units", "MTD Dollars"}); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}
	for _, row := range snap.RepMonthly {
		record := []string{
			row.RepName,
			strconv.FormatFloat(row.MTDUnits, 'f', -1, 64),
			strconv.FormatFloat(row.MTDDollars, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Stats reports operational counters for the stats endpoint.
func (s *Service) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":          s.started,
		"cycles_run":       s.cyclesRun,
		"cycles_failed":    s.cyclesFailed,
		"refresh_interval": s.interval.String(),
		"has_snapshot":     s.snapshot != nil,
	}
	if !s.startedAt.IsZero() {
		stats["uptime"] = s.clock().Sub(s.startedAt).String()
	}
	if s.snapshot != nil {
		stats["last_refreshed_at"] = s.snapshot.RefreshedAt
		stats["last_cycle_id"] = s.snapshot.CycleID
	}
	return stats
}

func (s *Service) runCycle(ctx context.Context) error {
	start := s.clock()

	s.mu.RLock()
	gen := s.generation
	src := s.sources
	s.mu.RUnlock()

	snap, err := s.buildSnapshot(ctx, src)

	s.mu.Lock()
	s.cyclesRun++
	stale := s.generation != gen
	if err != nil {
		s.cyclesFailed++
		if !stale {
			s.lastErr = err
		}
		s.mu.Unlock()
		metrics.RecordCycleFailure()
		s.logger.Warn(ctx, "refresh cycle failed", logger.Error(err))
		return err
	}
	if stale {
		s.mu.Unlock()
		s.logger.Info(ctx, "discarding snapshot from stale cycle", logger.String("cycle_id", snap.CycleID))
		return nil
	}
	s.snapshot = snap
	s.lastErr = nil
	s.mu.Unlock()

	elapsed := s.clock().Sub(start)
	metrics.RecordCycleSuccess(elapsed)
	metrics.UpdateSnapshotTimestamp(snap.RefreshedAt)

	underperformers := 0
	for _, card := range snap.Scorecards {
		if card.IsUnderperforming {
			underperformers++
		}
	}
	metrics.UpdateDerivedGauges(len(snap.Anomalies), underperformers, len(snap.Scorecards))

	s.logger.Info(ctx, "snapshot published",
		logger.String("cycle_id", snap.CycleID),
		logger.Duration("elapsed", elapsed),
		logger.Int("reps", len(snap.Scorecards)),
		logger.Int("anomalies", len(snap.Anomalies)),
	)
	return nil
}

// buildSnapshot fetches all seven tables in a fixed order and derives the
// full snapshot. Any fetch or parse error aborts the whole cycle.
func (s *Service) buildSnapshot(ctx context.Context, src Sources) (*Snapshot, error) {
	fetch := func(table, gid string) ([]source.Row, error) {
		start := s.clock()
		rows, err := s.fetcher.Fetch(ctx, src.BaseURL, gid)
		if err != nil {
			metrics.RecordFetchError(table)
			return nil, fmt.Errorf("fetch %s: %w", table, err)
		}
		metrics.RecordFetch(table, s.clock().Sub(start))
		metrics.UpdateRowsIngested(table, len(rows))
		return rows, nil
	}

	weeklyRows, err := fetch("weekly_uploads", src.WeeklyUploads)
	if err != nil {
		return nil, err
	}
	talkRows, err := fetch("talk_time", src.TalkTime)
	if err != nil {
		return nil, err
	}
	convRows, err := fetch("conversion", src.Conversion)
	if err != nil {
		return nil, err
	}
	leadsRows, err := fetch("leads_grabbed", src.LeadsGrabbed)
	if err != nil {
		return nil, err
	}
	behindRows, err := fetch("leads_behind", src.LeadsBehind)
	if err != nil {
		return nil, err
	}
	monthlyRows, err := fetch("rep_monthly", src.RepMonthly)
	if err != nil {
		return nil, err
	}
	dailyRows, err := fetch("rep_daily", src.RepDaily)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	today := model.DayOf(now)

	snap := &Snapshot{
		CycleID:           uuid.NewString(),
		RefreshedAt:       now,
		WeeklyUploads:     normalize.WeeklyUploads(weeklyRows),
		TalkTimeDaily:     normalize.TalkTime(talkRows),
		ConversionDaily:   normalize.Conversions(convRows),
		LeadsGrabbedDaily: normalize.LeadsGrabbed(leadsRows),
		LeadsBehind:       normalize.LeadsBehind(behindRows),
		RepMonthly:        normalize.RepMonthly(monthlyRows),
		RepDaily:          normalize.RepDaily(dailyRows),
	}

	buckets := cohort.Aggregate(snap.LeadsGrabbedDaily, snap.RepDaily)
	snap.Scorecards, snap.TeamAverage = performance.Compute(snap.RepMonthly, buckets)

	snap.Anomalies = signals.DetectAnomalies(snap.TalkTimeDaily, snap.ConversionDaily, today)
	snap.Insights = signals.GenerateInsights(snap.Scorecards, snap.TalkTimeDaily, snap.ConversionDaily, today)
	snap.Coaching = signals.GenerateCoaching(snap.Scorecards)
	snap.Notifications = signals.BuildNotifications(snap.Anomalies, snap.Scorecards, now)

	snap.Forecast = forecast.Project(snap.ConversionDaily, now)
	snap.Staffing = forecast.PlanStaffing(snap.LeadsGrabbedDaily, snap.ConversionDaily, snap.TalkTimeDaily, len(snap.RepMonthly), today)

	snap.KPIs = buildKPIs(snap)
	snap.Comparisons = buildComparisons(snap, today)

	return snap, nil
}
