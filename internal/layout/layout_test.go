package layout

import "testing"

func TestColumnsForWeekday(t *testing.T) {
	t.Parallel()

	for wd := FirstWeekday; wd <= LastWeekday; wd++ {
		cols, err := ColumnsForWeekday(wd)
		if err != nil {
			t.Fatalf("weekday %d: unexpected error %v", wd, err)
		}
		if cols.Date != wd*2 || cols.Checkbox != wd*2+1 {
			t.Fatalf("weekday %d: got %+v", wd, cols)
		}
		if cols.Date == NameColumn || cols.Checkbox == NameColumn {
			t.Fatalf("weekday %d overlaps the name column", wd)
		}
	}

	cols, _ := ColumnsForWeekday(3)
	if cols.Date != 6 || cols.Checkbox != 7 {
		t.Fatalf("wednesday columns = %+v, want {6 7}", cols)
	}
}

func TestColumnsForWeekday_OutOfRange(t *testing.T) {
	t.Parallel()

	for _, wd := range []int{-1, 0, 8} {
		if _, err := ColumnsForWeekday(wd); !IsInvalidWeekday(err) {
			t.Fatalf("weekday %d: expected invalid weekday error, got %v", wd, err)
		}
	}
}

func TestColumnLetter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		index int
		want  string
		ok    bool
	}{
		{0, "", false},
		{1, "A", true},
		{6, "F", true},
		{15, "O", true},
		{16, "", false},
	}
	for _, tc := range cases {
		got, ok := ColumnLetter(tc.index)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ColumnLetter(%d) = (%q, %v), want (%q, %v)", tc.index, got, ok, tc.want, tc.ok)
		}
	}
}

func TestWeekdayRange(t *testing.T) {
	t.Parallel()

	got, err := WeekdayRange("Kitchen", 2, HeaderRows+1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Kitchen!D2:E" {
		t.Fatalf("WeekdayRange = %q", got)
	}

	got, _ = WeekdayRange("Bar", 7, 2)
	if got != "Bar!N2:O" {
		t.Fatalf("sunday range = %q", got)
	}

	if _, err := WeekdayRange("Bar", 9, 2); err == nil {
		t.Fatalf("expected error for weekday 9")
	}
}
