package service

import (
	"time"

	"writeoff_monitor/internal/models"
)

// CellParams is one cell edit coming from the API.
type CellParams struct {
	Row    int
	Column int
	Kind   models.CellKind
	Value  string
}

// RunFilter narrows the run log by start time; zero bounds are open.
type RunFilter struct {
	From time.Time
	To   time.Time
}
