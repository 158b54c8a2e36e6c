package repository

import (
	"context"
	"database/sql"
	"fmt"

	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
)

// GridSQLite stores every grid as sparse cells and doubles as the paint target.
type GridSQLite struct {
	db *sql.DB
}

func NewGridSQLite(db *sql.DB) *GridSQLite { return &GridSQLite{db: db} }

var (
	_ GridRepo    = (*GridSQLite)(nil)
	_ CellPainter = (*GridSQLite)(nil)
)

const (
	// grids come back in the order they were first written, like sheet tabs
	selectGridsSQL = `SELECT grid FROM grid_cells GROUP BY grid ORDER BY MIN(rowid) ASC`

	selectWeekdayCellsSQL = `
		SELECT row, col, kind, value FROM grid_cells
		WHERE grid = ? AND row >= ? AND col IN (?, ?, ?)
		ORDER BY row ASC, col ASC
	`

	upsertCellSQL = `
		INSERT INTO grid_cells (grid, row, col, kind, value)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(grid, row, col) DO UPDATE SET
			kind=excluded.kind,
			value=excluded.value
	`

	updateBackgroundSQL = `UPDATE grid_cells SET background = ? WHERE grid = ? AND row = ? AND col = ?`
)

// Grids lists grid names.
func (r *GridSQLite) Grids(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectGridsSQL)
	if err != nil {
		return nil, fmt.Errorf("select grids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan grid: %w", err)
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Rows reads the name column plus the weekday column pair for every row >= firstRow.
// Cells are decoded to typed values; validity is left to the caller.
func (r *GridSQLite) Rows(ctx context.Context, grid string, cols layout.Columns, firstRow int) ([]models.RawRow, error) {
	rows, err := r.db.QueryContext(ctx, selectWeekdayCellsSQL,
		grid, firstRow, layout.NameColumn, cols.Date, cols.Checkbox)
	if err != nil {
		return nil, fmt.Errorf("select cells of %q: %w", grid, err)
	}
	defer rows.Close()

	var (
		out []models.RawRow
		cur *models.RawRow
	)
	for rows.Next() {
		var c models.Cell
		if err := rows.Scan(&c.Row, &c.Column, &c.Kind, &c.Value); err != nil {
			return nil, fmt.Errorf("scan cell of %q: %w", grid, err)
		}
		if cur == nil || cur.Row != c.Row {
			out = append(out, models.RawRow{Row: c.Row})
			cur = &out[len(out)-1]
		}
		switch c.Column {
		case layout.NameColumn:
			cur.Name = c.Value
		case cols.Date:
			cur.Due = c.Typed()
		case cols.Checkbox:
			cur.Checked = c.Typed()
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// PutCell creates or overwrites one cell, keeping its background.
func (r *GridSQLite) PutCell(ctx context.Context, grid string, c models.Cell) error {
	if _, err := r.db.ExecContext(ctx, upsertCellSQL, grid, c.Row, c.Column, string(c.Kind), c.Value); err != nil {
		return fmt.Errorf("upsert cell %s(%d,%d): %w", grid, c.Row, c.Column, err)
	}
	return nil
}

// SetBackground paints one cell. A cell that no longer exists yields ErrCellNotFound.
func (r *GridSQLite) SetBackground(ctx context.Context, grid string, row, col int, color string) error {
	res, err := r.db.ExecContext(ctx, updateBackgroundSQL, color, grid, row, col)
	if err != nil {
		return fmt.Errorf("paint %s(%d,%d): %w", grid, row, col, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("paint %s(%d,%d): %w", grid, row, col, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s(%d,%d)", ErrCellNotFound, grid, row, col)
	}
	return nil
}
