package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/repository"
)

var (
	ErrUnknownUnit   = errors.New("unknown unit")
	errInvalidCell   = errors.New("invalid cell")
	errEmptyUnitName = errors.New("unit name is empty")
)

// GridService manages the unit directory and grid contents.
type GridService struct {
	units    repository.UnitRepo
	grids    repository.GridRepo
	firstRow int
}

func NewGridService(units repository.UnitRepo, grids repository.GridRepo, firstRow int) *GridService {
	if firstRow < 1 {
		firstRow = layout.HeaderRows + 1
	}
	return &GridService{units: units, grids: grids, firstRow: firstRow}
}

func (s *GridService) Units(ctx context.Context) ([]wm.Unit, error) {
	return s.units.List(ctx)
}

func (s *GridService) CreateUnit(ctx context.Context, name string) (wm.Unit, error) {
	if strings.TrimSpace(name) == "" {
		return wm.Unit{}, errEmptyUnitName
	}
	return s.units.Create(ctx, name)
}

// WeekdayRows returns the raw rows of a unit's grid for weekday (1..7).
func (s *GridService) WeekdayRows(ctx context.Context, unit string, weekday int) ([]models.RawRow, error) {
	cols, err := layout.ColumnsForWeekday(weekday)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUnit(ctx, unit); err != nil {
		return nil, err
	}
	return s.grids.Rows(ctx, unit, cols, s.firstRow)
}

// PutCell writes one cell of a unit's grid after layout checks.
func (s *GridService) PutCell(ctx context.Context, unit string, p CellParams) error {
	if err := validateCell(p); err != nil {
		return err
	}
	if err := s.ensureUnit(ctx, unit); err != nil {
		return err
	}
	return s.grids.PutCell(ctx, unit, models.Cell{Row: p.Row, Column: p.Column, Kind: p.Kind, Value: p.Value})
}

func (s *GridService) ensureUnit(ctx context.Context, name string) error {
	units, err := s.units.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range units {
		if u.Name == name {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownUnit, name)
}

func validateCell(p CellParams) error {
	if p.Row <= layout.HeaderRows {
		return fmt.Errorf("%w: row %d is a header row", errInvalidCell, p.Row)
	}
	if _, ok := layout.ColumnLetter(p.Column); !ok {
		return fmt.Errorf("%w: column %d outside the weekly layout", errInvalidCell, p.Column)
	}
	switch p.Kind {
	case models.CellEmpty, models.CellString, models.CellNumber:
	case models.CellBool:
		if _, ok := (models.Cell{Kind: p.Kind, Value: p.Value}).Typed().(bool); !ok {
			return fmt.Errorf("%w: %q is not a boolean", errInvalidCell, p.Value)
		}
	case models.CellDateTime:
		if _, ok := models.ParseDateTime(p.Value); !ok {
			return fmt.Errorf("%w: %q is not a date/time", errInvalidCell, p.Value)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", errInvalidCell, p.Kind)
	}
	return nil
}

// IsInvalidInput reports whether err is caused by the caller's input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, errInvalidCell) || errors.Is(err, errEmptyUnitName) || layout.IsInvalidWeekday(err)
}
