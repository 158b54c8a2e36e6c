package models

import (
	"testing"
	"time"
)

func TestCellTyped(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		cell  Cell
		check func(any) bool
	}{
		{
			name:  "empty is nil",
			cell:  Cell{},
			check: func(v any) bool { return v == nil },
		},
		{
			name: "time only datetime",
			cell: Cell{Kind: CellDateTime, Value: "18:30:05"},
			check: func(v any) bool {
				tm, ok := v.(time.Time)
				return ok && tm.Hour() == 18 && tm.Minute() == 30 && tm.Second() == 5
			},
		},
		{
			name: "rfc3339 datetime",
			cell: Cell{Kind: CellDateTime, Value: "2025-08-06T09:15:00Z"},
			check: func(v any) bool {
				tm, ok := v.(time.Time)
				return ok && tm.Hour() == 9 && tm.Minute() == 15
			},
		},
		{
			name:  "malformed datetime stays string",
			cell:  Cell{Kind: CellDateTime, Value: "soon"},
			check: func(v any) bool { s, ok := v.(string); return ok && s == "soon" },
		},
		{
			name:  "bool false",
			cell:  Cell{Kind: CellBool, Value: "FALSE"},
			check: func(v any) bool { b, ok := v.(bool); return ok && !b },
		},
		{
			name:  "bool garbage stays string",
			cell:  Cell{Kind: CellBool, Value: "maybe"},
			check: func(v any) bool { _, ok := v.(string); return ok },
		},
		{
			name:  "number",
			cell:  Cell{Kind: CellNumber, Value: " 4.5 "},
			check: func(v any) bool { f, ok := v.(float64); return ok && f == 4.5 },
		},
		{
			name:  "string",
			cell:  Cell{Kind: CellString, Value: "12:00"},
			check: func(v any) bool { s, ok := v.(string); return ok && s == "12:00" },
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.cell.Typed(); !tc.check(got) {
				t.Fatalf("unexpected typed value %#v", got)
			}
		})
	}
}

func TestParseDateTime_Empty(t *testing.T) {
	t.Parallel()

	if _, ok := ParseDateTime("   "); ok {
		t.Fatalf("blank input must not parse")
	}
}
