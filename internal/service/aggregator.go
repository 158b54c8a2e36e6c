package service

import (
	wm "writeoff_monitor"
	"writeoff_monitor/internal/models"
)

// Aggregate groups occurrences per unit. Grid names resolve against the
// directory by exact name (first entry wins on duplicates); unresolved names
// are dropped. Event types are deduplicated and units without events omitted.
// Units appear in the order their first occurrence does.
func Aggregate(directory []wm.Unit, occurrences []models.EventOccurrence) []wm.UnitEventSet {
	byName := make(map[string]wm.Unit, len(directory))
	for _, u := range directory {
		if _, dup := byName[u.Name]; !dup {
			byName[u.Name] = u
		}
	}

	var (
		out   = make([]wm.UnitEventSet, 0)
		index = make(map[string]int)
		seen  = make(map[string]map[string]struct{})
	)
	for _, occ := range occurrences {
		unit, ok := byName[occ.UnitName]
		if !ok {
			continue
		}
		i, ok := index[unit.Name]
		if !ok {
			out = append(out, wm.UnitEventSet{UnitID: unit.ID, UnitName: unit.Name, Events: []string{}})
			i = len(out) - 1
			index[unit.Name] = i
			seen[unit.Name] = make(map[string]struct{})
		}
		if _, dup := seen[unit.Name][occ.EventType]; dup {
			continue
		}
		seen[unit.Name][occ.EventType] = struct{}{}
		out[i].Events = append(out[i].Events, occ.EventType)
	}
	return out
}
