package service

import (
	"context"
	"errors"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/repository"
)

var errInvalidTimeRange = errors.New("invalid time range: From must be <= To")

type RunLogService struct {
	runs repository.RunRepo
}

func NewRunLogService(runs repository.RunRepo) *RunLogService {
	return &RunLogService{runs: runs}
}

func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// List returns runs started within the filter range.
func (s *RunLogService) List(ctx context.Context, f RunFilter) ([]wm.RunSummary, error) {
	from, to := normalizeToUTC(f.From), normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, errInvalidTimeRange
	}
	return s.runs.List(ctx, from, to)
}
