package gridfile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/repository"
)

// Stats counts what an import wrote.
type Stats struct {
	Units int
	Cells int
}

// Import creates the snapshot's units (existing names are kept) and writes
// every grid cell.
func Import(ctx context.Context, s *Snapshot, units repository.UnitRepo, grids repository.GridRepo) (Stats, error) {
	var st Stats
	for _, name := range s.Units {
		_, err := units.Create(ctx, name)
		switch {
		case err == nil:
			st.Units++
		case errors.Is(err, repository.ErrUnitExists):
		default:
			return st, fmt.Errorf("create unit %q: %w", name, err)
		}
	}
	for _, g := range s.Grids {
		for _, c := range g.Cells() {
			if err := grids.PutCell(ctx, g.Name, c); err != nil {
				return st, err
			}
			st.Cells++
		}
	}
	return st, nil
}

// Export reads the directory and every weekday of every grid back into a snapshot.
func Export(ctx context.Context, units repository.UnitRepo, grids repository.GridRepo, firstRow int) (*Snapshot, error) {
	dir, err := units.List(ctx)
	if err != nil {
		return nil, err
	}
	names, err := grids.Grids(ctx)
	if err != nil {
		return nil, err
	}

	s := &Snapshot{}
	for _, u := range dir {
		s.Units = append(s.Units, u.Name)
	}
	for _, name := range names {
		g, err := exportGrid(ctx, grids, name, firstRow)
		if err != nil {
			return nil, err
		}
		s.Grids = append(s.Grids, g)
	}
	return s, nil
}

func exportGrid(ctx context.Context, grids repository.GridRepo, name string, firstRow int) (Grid, error) {
	g := Grid{Name: name}
	index := make(map[int]int)
	for wd := layout.FirstWeekday; wd <= layout.LastWeekday; wd++ {
		cols, _ := layout.ColumnsForWeekday(wd)
		rows, err := grids.Rows(ctx, name, cols, firstRow)
		if err != nil {
			return Grid{}, err
		}
		for _, r := range rows {
			i, ok := index[r.Row]
			if !ok {
				g.Rows = append(g.Rows, Row{Row: r.Row, Name: r.Name})
				i = len(g.Rows) - 1
				index[r.Row] = i
			}
			day := dueDay(r.Due)
			day.Checked = r.Checked
			if day.Due == "" && day.DueText == "" && day.Checked == nil {
				continue
			}
			if g.Rows[i].Days == nil {
				g.Rows[i].Days = make(map[int]Day)
			}
			g.Rows[i].Days[wd] = day
		}
	}
	return g, nil
}

// dueDay keeps only real times in Due; anything else goes to DueText so it
// is never re-read as a time.
func dueDay(v any) Day {
	switch x := v.(type) {
	case nil:
		return Day{}
	case time.Time:
		return Day{Due: x.Format("15:04:05")}
	case string:
		return Day{DueText: x}
	case float64:
		return Day{DueText: strconv.FormatFloat(x, 'f', -1, 64)}
	default:
		return Day{DueText: fmt.Sprint(x)}
	}
}
