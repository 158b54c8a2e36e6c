// Package gridfile reads and writes weekly grids as YAML snapshots, the
// offline counterpart of the stored grid cells.
package gridfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"writeoff_monitor/internal/layout"
	"writeoff_monitor/internal/models"

	"gopkg.in/yaml.v3"
)

// Snapshot is the on-disk form of a unit directory plus its grids.
//
//	units: [Kitchen, Bar]
//	grids:
//	  - name: Kitchen
//	    rows:
//	      - name: milk
//	        days:
//	          3: {due: "12:05", checked: false}
//	          4: {due_text: "12:05"}
type Snapshot struct {
	Units []string `yaml:"units"`
	Grids []Grid   `yaml:"grids"`
}

type Grid struct {
	Name string `yaml:"name"`
	Rows []Row  `yaml:"rows"`
}

// Row is one ingredient line. Row numbers default to the position below the header.
type Row struct {
	Row  int         `yaml:"row,omitempty"`
	Name string      `yaml:"name"`
	Days map[int]Day `yaml:"days,omitempty"`
}

// Day is the (due, checked) pair of one weekday. Due values that do not parse
// as a time are kept as text, exactly like a mistyped sheet cell. DueText is
// always stored as text, even when it reads like a time; it wins over Due.
type Day struct {
	Due     string `yaml:"due,omitempty"`
	DueText string `yaml:"due_text,omitempty"`
	Checked any    `yaml:"checked,omitempty"`
}

// Load reads a snapshot file.
func Load(path string) (*Snapshot, error) {
	if path == "" {
		return nil, errors.New("snapshot path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML snapshot and checks its weekdays.
func Parse(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	for _, g := range s.Grids {
		if g.Name == "" {
			return nil, errors.New("grid without a name")
		}
		for _, r := range g.Rows {
			for wd := range r.Days {
				if _, err := layout.ColumnsForWeekday(wd); err != nil {
					return nil, fmt.Errorf("grid %q row %q: %w", g.Name, r.Name, err)
				}
			}
		}
	}
	return &s, nil
}

// Save writes s atomically: temp file in the same directory, then rename.
func Save(path string, s *Snapshot) error {
	if path == "" {
		return errors.New("snapshot path is empty")
	}
	if s == nil {
		return errors.New("snapshot is nil")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".grids-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Cells flattens a grid into stored cells: the name column plus every
// weekday's due/checked pair.
func (g Grid) Cells() []models.Cell {
	var out []models.Cell
	for i, r := range g.Rows {
		row := r.Row
		if row <= layout.HeaderRows {
			row = layout.HeaderRows + 1 + i
		}
		out = append(out, models.Cell{Row: row, Column: layout.NameColumn, Kind: models.CellString, Value: r.Name})
		for wd := layout.FirstWeekday; wd <= layout.LastWeekday; wd++ {
			day, ok := r.Days[wd]
			if !ok {
				continue
			}
			cols, _ := layout.ColumnsForWeekday(wd)
			if c, ok := day.dueCell(); ok {
				c.Row, c.Column = row, cols.Date
				out = append(out, c)
			}
			if c, ok := checkedCell(day.Checked); ok {
				c.Row, c.Column = row, cols.Checkbox
				out = append(out, c)
			}
		}
	}
	return out
}

func (d Day) dueCell() (models.Cell, bool) {
	if d.DueText != "" {
		return models.Cell{Kind: models.CellString, Value: d.DueText}, true
	}
	if d.Due == "" {
		return models.Cell{}, false
	}
	if _, ok := models.ParseDateTime(d.Due); ok {
		return models.Cell{Kind: models.CellDateTime, Value: d.Due}, true
	}
	return models.Cell{Kind: models.CellString, Value: d.Due}, true
}

func checkedCell(v any) (models.Cell, bool) {
	switch x := v.(type) {
	case nil:
		return models.Cell{}, false
	case bool:
		return models.Cell{Kind: models.CellBool, Value: strconv.FormatBool(x)}, true
	case int:
		return models.Cell{Kind: models.CellNumber, Value: strconv.Itoa(x)}, true
	case float64:
		return models.Cell{Kind: models.CellNumber, Value: strconv.FormatFloat(x, 'f', -1, 64)}, true
	case string:
		return models.Cell{Kind: models.CellString, Value: x}, true
	default:
		return models.Cell{Kind: models.CellString, Value: fmt.Sprint(x)}, true
	}
}
