package service

import (
	"context"
	"errors"
	"sync"
	"time"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/repository"
)

var errBoom = errors.New("boom")

// fakeGrids serves fixed rows per grid and records the columns asked for.
type fakeGrids struct {
	order   []string
	rows    map[string][]models.RawRow
	failOn  map[string]bool
	listErr error

	mu      sync.Mutex
	askCols []layout.Columns
	puts    []models.Cell
	putErr  error
}

func newFakeGrids() *fakeGrids {
	return &fakeGrids{rows: map[string][]models.RawRow{}, failOn: map[string]bool{}}
}

func (g *fakeGrids) add(grid string, rows ...models.RawRow) *fakeGrids {
	if _, ok := g.rows[grid]; !ok {
		g.order = append(g.order, grid)
	}
	g.rows[grid] = append(g.rows[grid], rows...)
	return g
}

func (g *fakeGrids) Grids(context.Context) ([]string, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]string(nil), g.order...), nil
}

func (g *fakeGrids) Rows(_ context.Context, grid string, cols layout.Columns, _ int) ([]models.RawRow, error) {
	g.mu.Lock()
	g.askCols = append(g.askCols, cols)
	g.mu.Unlock()
	if g.failOn[grid] {
		return nil, errBoom
	}
	return g.rows[grid], nil
}

func (g *fakeGrids) PutCell(_ context.Context, _ string, c models.Cell) error {
	if g.putErr != nil {
		return g.putErr
	}
	g.puts = append(g.puts, c)
	return nil
}

type fakeUnits struct {
	units []wm.Unit
	err   error
}

func (u *fakeUnits) List(context.Context) ([]wm.Unit, error) {
	if u.err != nil {
		return nil, u.err
	}
	return u.units, nil
}

func (u *fakeUnits) Create(_ context.Context, name string) (wm.Unit, error) {
	if u.err != nil {
		return wm.Unit{}, u.err
	}
	unit := wm.Unit{ID: len(u.units) + 1, Name: name}
	u.units = append(u.units, unit)
	return unit, nil
}

type paintCall struct {
	Grid   string
	Row    int
	Column int
	Color  string
}

type fakePainter struct {
	calls []paintCall
	errs  map[int]error // keyed by row
}

func (p *fakePainter) SetBackground(_ context.Context, grid string, row, col int, color string) error {
	if err := p.errs[row]; err != nil {
		return err
	}
	p.calls = append(p.calls, paintCall{Grid: grid, Row: row, Column: col, Color: color})
	return nil
}

type fakeSink struct {
	sent [][]wm.UnitEventSet
	err  error
}

func (s *fakeSink) Send(_ context.Context, payload []wm.UnitEventSet) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, payload)
	return nil
}

type fakeRuns struct {
	appended []wm.RunSummary
	from, to time.Time
	err      error
}

func (r *fakeRuns) Append(_ context.Context, sum wm.RunSummary) error {
	if r.err != nil {
		return r.err
	}
	r.appended = append(r.appended, sum)
	return nil
}

func (r *fakeRuns) List(_ context.Context, from, to time.Time) ([]wm.RunSummary, error) {
	r.from, r.to = from, to
	return r.appended, r.err
}

var (
	_ repository.GridRepo    = (*fakeGrids)(nil)
	_ repository.UnitRepo    = (*fakeUnits)(nil)
	_ repository.CellPainter = (*fakePainter)(nil)
	_ repository.RunRepo     = (*fakeRuns)(nil)
)

// tod builds a time-of-day cell value the way a spreadsheet hands it out.
func tod(h, m, s int) time.Time {
	return time.Date(1899, 12, 30, h, m, s, 0, time.UTC)
}
