package service

import (
	"context"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Monitor runs and previews the write-off engine.
type Monitor interface {
	Run(ctx context.Context) (wm.RunSummary, error)
	Preview(ctx context.Context, at time.Time) (Result, error)
	Subscribe() (<-chan wm.RunSummary, func())
}

// Grids edits the unit directory and grid cells.
type Grids interface {
	Units(ctx context.Context) ([]wm.Unit, error)
	CreateUnit(ctx context.Context, name string) (wm.Unit, error)
	WeekdayRows(ctx context.Context, unit string, weekday int) ([]models.RawRow, error)
	PutCell(ctx context.Context, unit string, p CellParams) error
}

// RunLog exposes the invocation audit log.
type RunLog interface {
	List(ctx context.Context, f RunFilter) ([]wm.RunSummary, error)
}

// Service aggregates the sub-services used by the HTTP layer.
type Service struct {
	Authorization
	Monitor
	Grids
	RunLog
}

// NewService builds the HTTP-facing services around an already wired engine.
func NewService(repos *repository.Repository, monitor *MonitorService, signingKey string, tokenTTL time.Duration, firstRow int) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, signingKey, tokenTTL),
		Monitor:       monitor,
		Grids:         NewGridService(repos.Units, repos.Grids, firstRow),
		RunLog:        NewRunLogService(repos.Runs),
	}
}
