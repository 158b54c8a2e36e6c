package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
)

var (
	// ErrCellNotFound is returned when a paint target does not exist.
	ErrCellNotFound = errors.New("grid cell not found")
	// ErrUnitExists is returned on a duplicate unit name.
	ErrUnitExists = errors.New("unit already exists")
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.Operator, error)
}

// UnitRepo is the unit directory.
type UnitRepo interface {
	List(ctx context.Context) ([]wm.Unit, error)
	Create(ctx context.Context, name string) (wm.Unit, error)
}

// GridRepo is the grid data source: one grid per unit, addressed by 1-based row/column.
type GridRepo interface {
	Grids(ctx context.Context) ([]string, error)
	Rows(ctx context.Context, grid string, cols layout.Columns, firstRow int) ([]models.RawRow, error)
	PutCell(ctx context.Context, grid string, c models.Cell) error
}

// CellPainter mutates the display colour of one grid cell.
type CellPainter interface {
	SetBackground(ctx context.Context, grid string, row, col int, color string) error
}

// RunRepo keeps the invocation audit log.
type RunRepo interface {
	Append(ctx context.Context, r wm.RunSummary) error
	List(ctx context.Context, from, to time.Time) ([]wm.RunSummary, error)
}

type Repository struct {
	Units   UnitRepo
	Grids   GridRepo
	Painter CellPainter
	Runs    RunRepo
	Auth    Authorization
}

func NewRepository(db *sql.DB) *Repository {
	grids := NewGridSQLite(db)
	return &Repository{
		Units:   NewUnitSQLite(db),
		Grids:   grids,
		Painter: grids,
		Runs:    NewRunSQLite(db),
		Auth:    NewOperatorRepository(db),
	}
}
