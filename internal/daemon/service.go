// Package daemon provides the long-running profitability monitor service.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/theirongolddev/burnrate/internal/model"
	"github.com/theirongolddev/burnrate/internal/pipeline"
)

// Defaults applied by New.
const (
	DefaultAddr         = "127.0.0.1:8787"
	DefaultInterval     = 60 * time.Second
	DefaultEventsBuffer = 200
	minInterval         = 2 * time.Second
)

// Config controls the daemon runtime behavior.
type Config struct {
	OwnerID      string
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	// Now returns the reference time for each poll. Defaults to time.Now.
	Now func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Interval < minInterval {
		c.Interval = DefaultInterval
	}
	if c.EventsBuffer < 1 {
		c.EventsBuffer = DefaultEventsBuffer
	}
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Snapshot is the compact monthly summary carried in status and events.
type Snapshot struct {
	At                   time.Time `json:"at"`
	Month                string    `json:"month"`
	TotalRevenue         float64   `json:"total_revenue"`
	TotalSpent           float64   `json:"total_spent"`
	TotalMargin          float64   `json:"total_margin"`
	OverallMarginPercent float64   `json:"overall_margin_percent"`
	ClientCount          int       `json:"client_count"`
	AtRiskCount          int       `json:"at_risk_count"`
}

func snapshotOf(r pipeline.Report, at time.Time) Snapshot {
	return Snapshot{
		At:                   at,
		Month:                r.Month.Format("2006-01"),
		TotalRevenue:         r.Summary.TotalRevenue,
		TotalSpent:           r.Summary.TotalSpent,
		TotalMargin:          r.Summary.TotalMargin,
		OverallMarginPercent: r.Summary.OverallMarginPercent,
		ClientCount:          r.Summary.ClientCount,
		AtRiskCount:          r.Summary.AtRiskCount,
	}
}

// Delta is the change in the summary totals between two polls.
type Delta struct {
	TotalRevenue float64 `json:"total_revenue"`
	TotalSpent   float64 `json:"total_spent"`
	TotalMargin  float64 `json:"total_margin"`
	ClientCount  int     `json:"client_count"`
	AtRiskCount  int     `json:"at_risk_count"`
}

func (d Delta) isZero() bool { return d == Delta{} }

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		TotalRevenue: curr.TotalRevenue - prev.TotalRevenue,
		TotalSpent:   curr.TotalSpent - prev.TotalSpent,
		TotalMargin:  curr.TotalMargin - prev.TotalMargin,
		ClientCount:  curr.ClientCount - prev.ClientCount,
		AtRiskCount:  curr.AtRiskCount - prev.AtRiskCount,
	}
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	OwnerID         string    `json:"owner_id"`
	DBPath          string    `json:"db_path,omitempty"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service polls the store, keeps the latest report and serves it over HTTP.
type Service struct {
	cfg     Config
	src     pipeline.Source
	log     *zap.Logger
	metrics *metrics
	feed    *feed
	echo    *echo.Echo

	startedAt time.Time

	mu         sync.RWMutex
	polled     bool
	lastPollAt time.Time
	pollCount  int64
	lastError  string
	snapshot   Snapshot
	clients    []model.ClientProfitability
}

// New returns a daemon service reading from src. A nil log discards output.
func New(cfg Config, src pipeline.Source, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	cfg = cfg.withDefaults()

	s := &Service{
		cfg:       cfg,
		src:       src,
		log:       log,
		metrics:   newMetrics(),
		feed:      newFeed(cfg.EventsBuffer),
		startedAt: time.Now(),
	}
	s.echo = s.routes()
	return s
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	return s.echo
}

// Run serves the API and polls every Interval until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	s.pollOnce(ctx)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.pollOnce(ctx)
		case err := <-serveErr:
			return fmt.Errorf("daemon http server: %w", err)
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return s.echo.Shutdown(shutdownCtx)
		}
	}
}

// pollOnce reloads the dataset, rebuilds the current month's report and
// emits an event when the summary moved.
func (s *Service) pollOnce(ctx context.Context) {
	start := time.Now()
	now := s.cfg.Now()
	s.metrics.polls.Inc()

	ds, err := pipeline.Load(ctx, s.src, s.cfg.OwnerID)
	if err != nil {
		s.metrics.pollErrors.Inc()
		s.mu.Lock()
		s.lastPollAt = now
		s.pollCount++
		s.lastError = err.Error()
		s.mu.Unlock()
		s.log.Warn("poll failed", zap.Error(err))
		return
	}

	report := pipeline.BuildReport(ds, now, now)
	s.metrics.observe(report)
	snap := snapshotOf(report, now)

	s.mu.Lock()
	first, prev := !s.polled, s.snapshot
	s.polled = true
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""
	s.snapshot = snap
	s.clients = report.Profitabilities
	s.mu.Unlock()

	changed := first
	if first {
		s.feed.emit(Event{Type: EventSnapshot, Timestamp: now, Snapshot: snap})
	} else if d := diffSnapshots(prev, snap); !d.isZero() {
		changed = true
		s.feed.emit(Event{Type: EventSummaryDelta, Timestamp: now, Snapshot: snap, Delta: d})
	}

	s.log.Debug("poll complete",
		zap.Int("clients", snap.ClientCount),
		zap.Int("at_risk", snap.AtRiskCount),
		zap.Bool("changed", changed),
		zap.Duration("took", time.Since(start)),
	)
}

func (s *Service) status() Status {
	events, subscribers := s.feed.counts()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval / time.Second),
		PollCount:       s.pollCount,
		OwnerID:         s.cfg.OwnerID,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      events,
		SubscriberCount: subscribers,
	}
}

func (s *Service) currentClients() []model.ClientProfitability {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ClientProfitability{}, s.clients...)
}
