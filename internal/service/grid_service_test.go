package service

import (
	"context"
	"errors"
	"testing"

	wm "writeoff_monitor"
	"writeoff_monitor/internal/models"
)

func newTestGridService() (*GridService, *fakeUnits, *fakeGrids) {
	units := &fakeUnits{units: []wm.Unit{{ID: 1, Name: "Kitchen"}}}
	grids := newFakeGrids().add("Kitchen", models.RawRow{Row: 2, Name: "milk"})
	return NewGridService(units, grids, 0), units, grids
}

func TestGridService_CreateUnit(t *testing.T) {
	t.Parallel()

	svc, units, _ := newTestGridService()
	if _, err := svc.CreateUnit(context.Background(), "  "); !IsInvalidInput(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	u, err := svc.CreateUnit(context.Background(), "Bar")
	if err != nil || u.Name != "Bar" || len(units.units) != 2 {
		t.Fatalf("CreateUnit = (%+v, %v)", u, err)
	}
}

func TestGridService_WeekdayRows(t *testing.T) {
	t.Parallel()

	svc, _, grids := newTestGridService()
	ctx := context.Background()

	rows, err := svc.WeekdayRows(ctx, "Kitchen", 2)
	if err != nil || len(rows) != 1 {
		t.Fatalf("WeekdayRows = (%v, %v)", rows, err)
	}
	if grids.askCols[0].Date != 4 || grids.askCols[0].Checkbox != 5 {
		t.Fatalf("weekday 2 must read columns 4/5, got %+v", grids.askCols[0])
	}
	if _, err := svc.WeekdayRows(ctx, "Kitchen", 8); !IsInvalidInput(err) {
		t.Fatalf("expected invalid weekday, got %v", err)
	}
	if _, err := svc.WeekdayRows(ctx, "Cellar", 1); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("expected ErrUnknownUnit, got %v", err)
	}
}

func TestGridService_PutCell(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		unit    string
		params  CellParams
		invalid bool
		unknown bool
	}{
		{name: "datetime", unit: "Kitchen", params: CellParams{Row: 2, Column: 6, Kind: models.CellDateTime, Value: "12:05:00"}},
		{name: "checkbox", unit: "Kitchen", params: CellParams{Row: 2, Column: 7, Kind: models.CellBool, Value: "false"}},
		{name: "header row", unit: "Kitchen", params: CellParams{Row: 1, Column: 2, Kind: models.CellString, Value: "Mon"}, invalid: true},
		{name: "column P", unit: "Kitchen", params: CellParams{Row: 2, Column: 16}, invalid: true},
		{name: "bad bool", unit: "Kitchen", params: CellParams{Row: 2, Column: 3, Kind: models.CellBool, Value: "yes"}, invalid: true},
		{name: "bad time", unit: "Kitchen", params: CellParams{Row: 2, Column: 2, Kind: models.CellDateTime, Value: "soon"}, invalid: true},
		{name: "bad kind", unit: "Kitchen", params: CellParams{Row: 2, Column: 2, Kind: "formula"}, invalid: true},
		{name: "unknown unit", unit: "Cellar", params: CellParams{Row: 2, Column: 2, Kind: models.CellString, Value: "x"}, unknown: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc, _, grids := newTestGridService()
			err := svc.PutCell(context.Background(), tc.unit, tc.params)
			switch {
			case tc.invalid:
				if !IsInvalidInput(err) {
					t.Fatalf("expected invalid input, got %v", err)
				}
			case tc.unknown:
				if !errors.Is(err, ErrUnknownUnit) {
					t.Fatalf("expected ErrUnknownUnit, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("PutCell: %v", err)
				}
				if len(grids.puts) != 1 || grids.puts[0].Column != tc.params.Column {
					t.Fatalf("cell not stored: %+v", grids.puts)
				}
			}
		})
	}
}
