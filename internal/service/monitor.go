package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/clock"
	"writeoff_monitor/internal/filter"
	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/logger"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/repository"

	"github.com/google/uuid"
)

// Result is one classification over a full grid snapshot.
type Result struct {
	Now         time.Time                `json:"now"`
	Weekday     int                      `json:"weekday"`
	Records     []models.WriteOffRecord  `json:"-"`
	Occurrences []models.EventOccurrence `json:"occurrences"`
	Payload     []wm.UnitEventSet        `json:"payload"`
}

// EngineConfig holds the static tables of the engine.
type EngineConfig struct {
	Filters  []filter.Spec
	Policy   CheckedPolicy
	FirstRow int
}

// MonitorService is the write-off engine: snapshot, classify, aggregate,
// then hand the result to every consumer.
type MonitorService struct {
	grids     repository.GridRepo
	units     repository.UnitRepo
	runs      repository.RunRepo
	clock     clock.Clock
	cfg       EngineConfig
	consumers []Consumer
	log       *logger.Logger
	feed      *feed

	mu sync.Mutex // one invocation at a time per process
}

// NewMonitorService wires the engine. runs may be nil to skip the audit log.
func NewMonitorService(grids repository.GridRepo, units repository.UnitRepo, runs repository.RunRepo,
	clk clock.Clock, cfg EngineConfig, log *logger.Logger, consumers ...Consumer) *MonitorService {
	if cfg.FirstRow < 1 {
		cfg.FirstRow = layout.HeaderRows + 1
	}
	if cfg.Policy == "" {
		cfg.Policy = ExcludeChecked
	}
	return &MonitorService{
		grids:     grids,
		units:     units,
		runs:      runs,
		clock:     clk,
		cfg:       cfg,
		consumers: consumers,
		log:       log,
		feed:      newFeed(),
	}
}

// Run performs one invocation at the clock's current instant. The returned
// error is only set when no snapshot could be taken at all; consumer failures
// are reported in the summary.
func (s *MonitorService) Run(ctx context.Context) (wm.RunSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	sum := wm.RunSummary{ID: uuid.NewString(), StartedAt: s.clock.Instant(), Weekday: clock.Weekday(now)}

	res, err := s.classify(ctx, now)
	if err != nil {
		return sum, err
	}
	sum.Records = len(res.Records)
	sum.Occurrences = len(res.Occurrences)
	sum.Units = len(res.Payload)
	sum.Payload = res.Payload

	for _, c := range s.consumers {
		if err := c.Consume(ctx, res, &sum); err != nil {
			s.log.Errorw("consumer_failed", "consumer", c.Name(), "err", err, "run_id", sum.ID)
			if sum.Errors == nil {
				sum.Errors = make(map[string]string)
			}
			sum.Errors[c.Name()] = err.Error()
		}
	}

	if s.runs != nil {
		if err := s.runs.Append(ctx, sum); err != nil {
			s.log.Errorw("run_log_append_failed", "err", err, "run_id", sum.ID)
		}
	}
	s.log.Infow("run_completed",
		"run_id", sum.ID, "weekday", sum.Weekday, "records", sum.Records,
		"occurrences", sum.Occurrences, "units", sum.Units,
		"dispatched", sum.Dispatched, "painted", sum.Painted)

	s.feed.publish(sum)
	return sum, nil
}

// Preview classifies the current snapshot at an arbitrary instant without
// invoking any consumer. A zero at means the clock's current instant.
func (s *MonitorService) Preview(ctx context.Context, at time.Time) (Result, error) {
	if at.IsZero() {
		at = s.clock.Now()
	}
	return s.classify(ctx, at)
}

// Subscribe streams completed runs until cancel is called.
func (s *MonitorService) Subscribe() (<-chan wm.RunSummary, func()) {
	return s.feed.subscribe()
}

func (s *MonitorService) classify(ctx context.Context, now time.Time) (Result, error) {
	weekday := clock.Weekday(now)
	res := Result{Now: now, Weekday: weekday, Payload: []wm.UnitEventSet{}}

	cols, err := layout.ColumnsForWeekday(weekday)
	if err != nil {
		return res, err
	}
	grids, err := s.grids.Grids(ctx)
	if err != nil {
		return res, fmt.Errorf("list grids: %w", err)
	}

	for _, grid := range grids {
		rows, err := s.grids.Rows(ctx, grid, cols, s.cfg.FirstRow)
		if err != nil {
			s.log.Errorw("grid_read_failed", "err", err, "grid", grid)
			continue
		}
		records := ExtractRecords(grid, rows, weekday, cols, now, s.cfg.Policy)
		if dropped := len(rows) - len(records); dropped > 0 {
			s.log.Debugw("rows_dropped", "grid", grid, "dropped", dropped)
		}
		res.Records = append(res.Records, records...)
	}
	res.Occurrences = Classify(res.Records, s.cfg.Filters, now)

	directory, err := s.units.List(ctx)
	if err != nil {
		// paint can still run without the directory
		s.log.Errorw("unit_directory_failed", "err", err)
		return res, nil
	}
	res.Payload = Aggregate(directory, res.Occurrences)
	return res, nil
}
