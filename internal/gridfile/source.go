package gridfile

import (
	"context"
	"fmt"
	"sort"
	"sync"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/repository"
)

type cellKey struct {
	row, col int
}

type storedCell struct {
	cell       models.Cell
	background string
}

// Source is an in-memory grid store: unit directory, grids and paint target
// in one. It backs snapshot mode and tests.
type Source struct {
	mu    sync.RWMutex
	units []wm.Unit
	order []string
	cells map[string]map[cellKey]*storedCell
}

var (
	_ repository.UnitRepo    = (*Source)(nil)
	_ repository.GridRepo    = (*Source)(nil)
	_ repository.CellPainter = (*Source)(nil)
)

func NewSource() *Source {
	return &Source{cells: make(map[string]map[cellKey]*storedCell)}
}

// FromSnapshot builds a Source holding everything in s.
func FromSnapshot(ctx context.Context, s *Snapshot) (*Source, error) {
	src := NewSource()
	if _, err := Import(ctx, s, src, src); err != nil {
		return nil, err
	}
	return src, nil
}

func (s *Source) List(context.Context) ([]wm.Unit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]wm.Unit(nil), s.units...), nil
}

// Create adds a unit. Names are stored verbatim, as in the SQLite directory.
func (s *Source) Create(_ context.Context, name string) (wm.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.units {
		if u.Name == name {
			return wm.Unit{}, fmt.Errorf("%w: %q", repository.ErrUnitExists, name)
		}
	}
	u := wm.Unit{ID: len(s.units) + 1, Name: name}
	s.units = append(s.units, u)
	return u, nil
}

func (s *Source) Grids(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...), nil
}

func (s *Source) Rows(_ context.Context, grid string, cols layout.Columns, firstRow int) ([]models.RawRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byRow := make(map[int]*models.RawRow)
	for k, sc := range s.cells[grid] {
		if k.row < firstRow {
			continue
		}
		if k.col != layout.NameColumn && k.col != cols.Date && k.col != cols.Checkbox {
			continue
		}
		r, ok := byRow[k.row]
		if !ok {
			r = &models.RawRow{Row: k.row}
			byRow[k.row] = r
		}
		switch k.col {
		case layout.NameColumn:
			r.Name = sc.cell.Value
		case cols.Date:
			r.Due = sc.cell.Typed()
		case cols.Checkbox:
			r.Checked = sc.cell.Typed()
		}
	}

	out := make([]models.RawRow, 0, len(byRow))
	for _, r := range byRow {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Row < out[j].Row })
	return out, nil
}

func (s *Source) PutCell(_ context.Context, grid string, c models.Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.cells[grid]
	if !ok {
		g = make(map[cellKey]*storedCell)
		s.cells[grid] = g
		s.order = append(s.order, grid)
	}
	k := cellKey{c.Row, c.Column}
	if sc, ok := g[k]; ok {
		sc.cell = c
		return nil
	}
	g[k] = &storedCell{cell: c}
	return nil
}

func (s *Source) SetBackground(_ context.Context, grid string, row, col int, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc, ok := s.cells[grid][cellKey{row, col}]
	if !ok {
		return fmt.Errorf("%w: %s(%d,%d)", repository.ErrCellNotFound, grid, row, col)
	}
	sc.background = color
	return nil
}

// Background returns the colour painted on a cell, if any.
func (s *Source) Background(grid string, row, col int) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.cells[grid][cellKey{row, col}]
	if !ok || sc.background == "" {
		return "", false
	}
	return sc.background, true
}
