package service

import (
	"context"
	"errors"
	"fmt"

	"writeoff_monitor/internal/logger"
	"writeoff_monitor/internal/models"
	"writeoff_monitor/internal/repository"
)

// ColorSpec maps an event type to a cell background colour.
type ColorSpec struct {
	EventType string
	Color     string
}

// ColorTable is a static event-to-colour lookup.
type ColorTable []ColorSpec

// Lookup returns the colour of the first entry matching eventType.
func (t ColorTable) Lookup(eventType string) (string, bool) {
	for _, c := range t {
		if c.EventType == eventType {
			return c.Color, true
		}
	}
	return "", false
}

// Paint colours the originating cell of every occurrence with a configured colour.
// Unmapped event types are skipped. Missing targets are logged and skipped; other
// painter failures are logged, skipped and reported in the returned error.
func Paint(ctx context.Context, painter repository.CellPainter, colors ColorTable, occurrences []models.EventOccurrence, log *logger.Logger) (int, error) {
	var (
		painted int
		errs    []error
	)
	for _, occ := range occurrences {
		color, ok := colors.Lookup(occ.EventType)
		if !ok {
			continue
		}
		err := painter.SetBackground(ctx, occ.UnitName, occ.Row, occ.Column, color)
		switch {
		case err == nil:
			painted++
		case errors.Is(err, repository.ErrCellNotFound):
			log.Infow("paint_target_missing", "unit", occ.UnitName, "row", occ.Row, "column", occ.Column)
		default:
			log.Errorw("paint_failed", "err", err, "unit", occ.UnitName, "row", occ.Row, "column", occ.Column)
			errs = append(errs, fmt.Errorf("%s(%d,%d): %w", occ.UnitName, occ.Row, occ.Column, err))
		}
	}
	return painted, errors.Join(errs...)
}
