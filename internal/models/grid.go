package models

import (
	"strconv"
	"strings"
	"time"
)

// CellKind is the stored type tag of a grid cell.
type CellKind string

const (
	CellEmpty    CellKind = ""
	CellString   CellKind = "string"
	CellNumber   CellKind = "number"
	CellBool     CellKind = "bool"
	CellDateTime CellKind = "datetime"
)

// accepted layouts for datetime cells, most specific first
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"15:04:05",
	"15:04",
}

// Cell is one stored grid value addressed by 1-based row/column.
type Cell struct {
	Row    int      `json:"row"`
	Column int      `json:"column"`
	Kind   CellKind `json:"kind"`
	Value  string   `json:"value"`
}

// Typed decodes the cell into the value a spreadsheet would hand out:
// time.Time, bool, float64, string, or nil for an empty cell.
// A value that does not parse as its declared kind comes back as its raw string.
func (c Cell) Typed() any {
	switch c.Kind {
	case CellEmpty:
		if c.Value == "" {
			return nil
		}
		return c.Value
	case CellDateTime:
		if t, ok := ParseDateTime(c.Value); ok {
			return t
		}
	case CellBool:
		if b, err := strconv.ParseBool(strings.TrimSpace(c.Value)); err == nil {
			return b
		}
	case CellNumber:
		if f, err := strconv.ParseFloat(strings.TrimSpace(c.Value), 64); err == nil {
			return f
		}
	}
	return c.Value
}

// ParseDateTime parses a datetime cell value. Time-only values land on 0000-01-01 UTC.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RawRow is one grid row for a weekday, as read from the data source.
// Due and Checked hold typed cell values (see Cell.Typed).
type RawRow struct {
	Row     int
	Name    string
	Due     any
	Checked any
}

// WriteOffRecord is a validated pending write-off with DueAt moved onto today.
type WriteOffRecord struct {
	Name         string
	Unit         string
	DueAt        time.Time
	IsWrittenOff bool
	Row          int
	Column       int
	Weekday      int
}

// EventOccurrence is one (record, matching filter) pair.
type EventOccurrence struct {
	EventType string `json:"event_type"`
	UnitName  string `json:"unit_name"`
	Row       int    `json:"row"`
	Column    int    `json:"column"`
}
