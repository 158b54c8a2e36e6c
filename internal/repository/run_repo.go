package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	wm "writeoff_monitor"

	"github.com/google/uuid"
)

// RunSQLite is the invocation audit log. It stores counts and consumer
// errors per run, never the events themselves.
type RunSQLite struct {
	db *sql.DB
}

func NewRunSQLite(db *sql.DB) *RunSQLite { return &RunSQLite{db: db} }

var _ RunRepo = (*RunSQLite)(nil)

const insertRunSQL = `
		INSERT INTO runs (id, started_at, weekday, records, occurrences, units, dispatched, painted, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

// marshalRunErrors converts the consumer error map to JSON; nil for no errors.
func marshalRunErrors(errs map[string]string) (*string, error) {
	if len(errs) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(errs)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

func unmarshalRunErrors(s sql.NullString) map[string]string {
	if !s.Valid || s.String == "" {
		return nil
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(s.String), &out); err != nil {
		return map[string]string{"raw": s.String} // keep raw if malformed
	}
	return out
}

// Append inserts a run. Missing ID and StartedAt are filled in.
func (r *RunSQLite) Append(ctx context.Context, run wm.RunSummary) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	errsPtr, err := marshalRunErrors(run.Errors)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.StartedAt.UTC().Format("2006-01-02 15:04:05"),
		run.Weekday,
		run.Records,
		run.Occurrences,
		run.Units,
		run.Dispatched,
		run.Painted,
		errsPtr,
	)
	return err
}

// List returns runs within [from, to] (zero bounds are open), oldest first.
func (r *RunSQLite) List(ctx context.Context, from, to time.Time) ([]wm.RunSummary, error) {
	var (
		conds []string
		args  []any
	)
	if !from.IsZero() {
		conds = append(conds, "started_at >= ?")
		args = append(args, from.UTC().Format("2006-01-02 15:04:05"))
	}
	if !to.IsZero() {
		conds = append(conds, "started_at <= ?")
		args = append(args, to.UTC().Format("2006-01-02 15:04:05"))
	}

	q := `SELECT id, started_at, weekday, records, occurrences, units, dispatched, painted, errors FROM runs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY started_at ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]wm.RunSummary, 0, 32)
	for rows.Next() {
		var (
			run     wm.RunSummary
			errsStr sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Weekday, &run.Records,
			&run.Occurrences, &run.Units, &run.Dispatched, &run.Painted, &errsStr); err != nil {
			return nil, err
		}
		run.StartedAt = run.StartedAt.UTC()
		run.Errors = unmarshalRunErrors(errsStr)
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
