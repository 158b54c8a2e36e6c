package service

import (
	"testing"
	"time"

	"writeoff_monitor/internal/filter"
	"writeoff_monitor/internal/models"
)

func TestClassify_DefaultTables(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	rec := func(row int, offset time.Duration) models.WriteOffRecord {
		return models.WriteOffRecord{Unit: "U", Row: row, Column: 6, DueAt: now.Add(offset)}
	}
	records := []models.WriteOffRecord{
		rec(2, 5*time.Minute),
		rec(3, 10*time.Minute),
		rec(4, 15*time.Minute),
		rec(5, 0),
		rec(6, -10*time.Minute),
		rec(7, 7*time.Minute),
	}

	got := Classify(records, filter.Defaults(), now)
	want := []models.EventOccurrence{
		{EventType: filter.EventExpireAt5Minutes, UnitName: "U", Row: 2, Column: 6},
		{EventType: filter.EventExpireAt10Minutes, UnitName: "U", Row: 3, Column: 6},
		{EventType: filter.EventExpireAt15Minutes, UnitName: "U", Row: 4, Column: 6},
		{EventType: filter.EventAlreadyExpired, UnitName: "U", Row: 5, Column: 6},
		{EventType: filter.EventAlreadyExpired, UnitName: "U", Row: 6, Column: 6},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d occurrences, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("occurrence %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestClassify_OverlappingFiltersBothFire(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	records := []models.WriteOffRecord{{Unit: "U", Row: 2, Column: 4, DueAt: now.Add(300 * time.Second)}}
	filters := []filter.Spec{filter.Range("A", 200, 400), filter.Range("B", 300, 300)}

	got := Classify(records, filters, now)
	if len(got) != 2 || got[0].EventType != "A" || got[1].EventType != "B" {
		t.Fatalf("expected both filters to fire in order, got %+v", got)
	}
}

func TestClassify_WrittenOffNeverFires(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	records := []models.WriteOffRecord{{Unit: "U", Row: 2, DueAt: now.Add(5 * time.Minute), IsWrittenOff: true}}
	if got := Classify(records, filter.Defaults(), now); len(got) != 0 {
		t.Fatalf("written-off record fired: %+v", got)
	}
}

func TestSecondsUntil(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	if got := SecondsUntil(now.Add(-90*time.Second), now); got != -90 {
		t.Fatalf("SecondsUntil = %v, want -90", got)
	}
}
