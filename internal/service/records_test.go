package service

import (
	"testing"
	"time"

	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"
)

func TestExtractRecords_ValidationAndNormalization(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	cols, _ := layout.ColumnsForWeekday(3)
	rows := []models.RawRow{
		{Row: 2, Name: "milk", Due: tod(12, 5, 0), Checked: false},
		{Row: 3, Name: "cream", Due: tod(13, 0, 0), Checked: true},
		{Row: 4, Name: "eggs", Due: "12:05", Checked: false},
		{Row: 5, Name: "ham", Due: tod(9, 0, 0), Checked: "FALSE"},
		{Row: 6, Name: "rice", Due: nil, Checked: false},
		{Row: 7, Name: "zero", Due: time.Time{}, Checked: false},
		{Row: 8, Name: "salt", Due: tod(23, 59, 59), Checked: nil},
	}

	got := ExtractRecords("Kitchen", rows, 3, cols, now, ExcludeChecked)
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d: %+v", len(got), got)
	}
	rec := got[0]
	want := time.Date(2025, 8, 6, 12, 5, 0, 0, time.UTC)
	if !rec.DueAt.Equal(want) {
		t.Fatalf("DueAt = %v, want %v", rec.DueAt, want)
	}
	if rec.Unit != "Kitchen" || rec.Name != "milk" || rec.Row != 2 || rec.Column != 6 || rec.Weekday != 3 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.IsWrittenOff {
		t.Fatalf("extracted record must be pending")
	}
}

func TestExtractRecords_IgnoreCheckedNeverReadsCheckbox(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 8, 6, 12, 0, 0, 0, time.UTC)
	cols, _ := layout.ColumnsForWeekday(3)
	rows := []models.RawRow{
		{Row: 2, Name: "a", Due: tod(12, 5, 0), Checked: true},
		{Row: 3, Name: "b", Due: tod(12, 5, 0), Checked: "garbage"},
		{Row: 4, Name: "c", Due: "not a time", Checked: false},
	}

	got := ExtractRecords("Bar", rows, 3, cols, now, IgnoreChecked)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	for _, r := range got {
		if r.IsWrittenOff {
			t.Fatalf("record %q must not be written off", r.Name)
		}
	}
}

func TestExtractRecords_EmptyInput(t *testing.T) {
	t.Parallel()

	got := ExtractRecords("X", nil, 1, layout.Columns{Date: 2, Checkbox: 3}, time.Now(), ExcludeChecked)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}
