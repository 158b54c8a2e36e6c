package layout

import (
	"errors"
	"fmt"
)

// Weekly grid layout: column 1 holds the ingredient name, weekday k owns
// the column pair (2k, 2k+1) = (due time, checked flag). Columns are 1-based.
const (
	NameColumn   = 1
	FirstWeekday = 1
	LastWeekday  = 7
	// HeaderRows is the number of rows above the first data row.
	HeaderRows = 1
)

var errInvalidWeekday = errors.New("weekday must be in 1..7")

// columnLetters maps a 1-based column index to its sheet letter. Index 0 is unused.
var columnLetters = [...]string{"", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O"}

// Columns is the pair of grid columns read for one weekday.
type Columns struct {
	Date     int
	Checkbox int
}

// ColumnsForWeekday returns the due-time and checkbox columns of weekday (1..7).
func ColumnsForWeekday(weekday int) (Columns, error) {
	if weekday < FirstWeekday || weekday > LastWeekday {
		return Columns{}, fmt.Errorf("%w: got %d", errInvalidWeekday, weekday)
	}
	return Columns{Date: weekday * 2, Checkbox: weekday*2 + 1}, nil
}

// ColumnLetter returns the sheet letter of a 1-based column index.
func ColumnLetter(index int) (string, bool) {
	if index < 1 || index >= len(columnLetters) {
		return "", false
	}
	return columnLetters[index], true
}

// WeekdayRange builds the A1 range covering a weekday's column pair from
// firstRow down to the end of the sheet, e.g. "Kitchen!D2:E".
func WeekdayRange(sheet string, weekday, firstRow int) (string, error) {
	cols, err := ColumnsForWeekday(weekday)
	if err != nil {
		return "", err
	}
	from, _ := ColumnLetter(cols.Date)
	to, _ := ColumnLetter(cols.Checkbox)
	return fmt.Sprintf("%s!%s%d:%s", sheet, from, firstRow, to), nil
}

// IsInvalidWeekday reports whether err came from an out-of-range weekday.
func IsInvalidWeekday(err error) bool {
	return errors.Is(err, errInvalidWeekday)
}
