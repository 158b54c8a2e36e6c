package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	wm "writeoff_monitor"
)

type UnitSQLite struct {
	db *sql.DB
}

func NewUnitSQLite(db *sql.DB) *UnitSQLite { return &UnitSQLite{db: db} }

var _ UnitRepo = (*UnitSQLite)(nil)

const (
	selectUnitsSQL = `SELECT id, name FROM units ORDER BY id ASC`
	insertUnitSQL  = `INSERT INTO units (name) VALUES (?)`
)

// List returns the unit directory in creation order.
func (r *UnitSQLite) List(ctx context.Context) ([]wm.Unit, error) {
	rows, err := r.db.QueryContext(ctx, selectUnitsSQL)
	if err != nil {
		return nil, fmt.Errorf("select units: %w", err)
	}
	defer rows.Close()

	var out []wm.Unit
	for rows.Next() {
		var u wm.Unit
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a unit. Names are stored verbatim since grids match them exactly.
func (r *UnitSQLite) Create(ctx context.Context, name string) (wm.Unit, error) {
	res, err := r.db.ExecContext(ctx, insertUnitSQL, name)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return wm.Unit{}, fmt.Errorf("%w: %q", ErrUnitExists, name)
		}
		return wm.Unit{}, fmt.Errorf("insert unit %q: %w", name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return wm.Unit{}, fmt.Errorf("last insert id for unit %q: %w", name, err)
	}
	return wm.Unit{ID: int(id), Name: name}, nil
}
