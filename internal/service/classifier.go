package service

import (
	"time"

	"writeoff_monitor/internal/filter"
	"writeoff_monitor/internal/models"
)

// SecondsUntil is the signed distance from now to due; negative once overdue.
func SecondsUntil(due, now time.Time) float64 {
	return due.Sub(now).Seconds()
}

// Classify evaluates every filter against every record. Each matching
// (record, filter) pair yields one occurrence, in record then filter order.
func Classify(records []models.WriteOffRecord, filters []filter.Spec, now time.Time) []models.EventOccurrence {
	var out []models.EventOccurrence
	for _, rec := range records {
		if rec.IsWrittenOff {
			continue
		}
		x := SecondsUntil(rec.DueAt, now)
		for _, f := range filters {
			if !f.IsSatisfied(x) {
				continue
			}
			out = append(out, models.EventOccurrence{
				EventType: f.EventType,
				UnitName:  rec.Unit,
				Row:       rec.Row,
				Column:    rec.Column,
			})
		}
	}
	return out
}
