package writeoff_monitor

import "time"

// Unit is one entry of the unit directory. A unit owns exactly one grid,
// matched by exact Name equality.
type Unit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// UnitEventSet is one element of the dispatch payload.
type UnitEventSet struct {
	UnitID   int      `json:"unit_id"`
	UnitName string   `json:"unit_name"`
	Events   []string `json:"events"` // distinct event types, no ordering guarantee
}

// RunSummary describes the outcome of one engine invocation.
type RunSummary struct {
	ID          string            `json:"id"`
	StartedAt   time.Time         `json:"started_at"`
	Weekday     int               `json:"weekday"`
	Records     int               `json:"records"`
	Occurrences int               `json:"occurrences"`
	Units       int               `json:"units"`
	Dispatched  bool              `json:"dispatched"`
	Painted     int               `json:"painted"`
	Errors      map[string]string `json:"errors,omitempty"` // consumer name -> error text
	Payload     []UnitEventSet    `json:"payload,omitempty"`
}
