package service

import (
	"time"

	"writeoff_monitor/internal/clock"
	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
)

// CheckedPolicy decides how the checked-off flag affects row validity.
type CheckedPolicy string

const (
	// ExcludeChecked keeps a row only when its checkbox is a boolean false.
	ExcludeChecked CheckedPolicy = "exclude_checked"
	// IgnoreChecked never reads the checkbox: every row with a valid due time
	// becomes a pending record.
	IgnoreChecked CheckedPolicy = "ignore_checked"
)

// dueTime accepts only a genuine, non-zero date/time value.
func dueTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// pending reports whether the checkbox value lets the row through under policy.
func pending(v any, policy CheckedPolicy) bool {
	if policy == IgnoreChecked {
		return true
	}
	b, isBool := v.(bool)
	return isBool && !b
}

// ExtractRecords turns a unit's raw rows for weekday into pending write-offs.
// Rows with a malformed due time, a non-boolean checkbox or a checked box are
// dropped without error. Due times are moved onto now's calendar date.
func ExtractRecords(unit string, rows []models.RawRow, weekday int, cols layout.Columns, now time.Time, policy CheckedPolicy) []models.WriteOffRecord {
	out := make([]models.WriteOffRecord, 0, len(rows))
	for _, r := range rows {
		due, ok := dueTime(r.Due)
		if !ok {
			continue
		}
		if !pending(r.Checked, policy) {
			continue
		}
		out = append(out, models.WriteOffRecord{
			Name:         r.Name,
			Unit:         unit,
			DueAt:        clock.Normalize(due, now),
			IsWrittenOff: false,
			Row:          r.Row,
			Column:       cols.Date,
			Weekday:      weekday,
		})
	}
	return out
}
