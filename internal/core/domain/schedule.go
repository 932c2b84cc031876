package domain

import (
	"slices"
	"strings"
	"time"
)

// RawScheduleEntry is a schedule row as delivered by a schedule provider.
// Start and End are ISO-8601 timestamps.
type RawScheduleEntry struct {
	Artist string `json:"artist"`
	Stage  string `json:"stage"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// ScheduleEntry is a validated performance: Start is strictly before End.
type ScheduleEntry struct {
	Artist string    `json:"artist"`
	Stage  string    `json:"stage"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp parses the ISO-8601 variants found in festival schedules.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeSchedule converts raw rows into schedule entries, dropping rows
// without an artist, a stage or a usable time window. Order is preserved.
func NormalizeSchedule(raw []RawScheduleEntry) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Artist) == "" || strings.TrimSpace(r.Stage) == "" {
			continue
		}
		start, ok := ParseTimestamp(r.Start)
		if !ok {
			continue
		}
		end, ok := ParseTimestamp(r.End)
		if !ok || !start.Before(end) {
			continue
		}
		entries = append(entries, ScheduleEntry{
			Artist: r.Artist,
			Stage:  r.Stage,
			Start:  start,
			End:    end,
		})
	}
	return entries
}

// Slot is a distinct (start, end) interval of a festival day.
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type slotKey struct {
	start, end int64
}

func (s Slot) key() slotKey {
	return slotKey{start: s.Start.UnixNano(), end: s.End.UnixNano()}
}

// SlotCell is one stage's performance within a slot.
type SlotCell struct {
	Stage  string `json:"stage"`
	Artist string `json:"artist"`
}

// SlotRow holds the performances of one slot in schedule order.
// Stages without a performance have no cell.
type SlotRow struct {
	Slot  Slot       `json:"slot"`
	Cells []SlotCell `json:"cells"`
}

// Artist returns the artist on stage during the row's slot.
func (r SlotRow) Artist(stage string) (string, bool) {
	for _, c := range r.Cells {
		if c.Stage == stage {
			return c.Artist, true
		}
	}
	return "", false
}

// StageSlotGrid is a festival day pivoted to one row per slot and one
// column per stage.
type StageSlotGrid struct {
	Stages []string  `json:"stages"`
	Rows   []SlotRow `json:"rows"`
}

// CellCount returns the number of performances placed in the grid.
func (g StageSlotGrid) CellCount() int {
	n := 0
	for _, r := range g.Rows {
		n += len(r.Cells)
	}
	return n
}

// Pivot groups entries by (start, end). Rows are ordered by start then end,
// cells keep schedule order, and stages are listed in first-seen order.
// A stage that is already occupied within a slot keeps its first artist.
func Pivot(entries []ScheduleEntry) StageSlotGrid {
	grid := StageSlotGrid{Stages: []string{}, Rows: []SlotRow{}}
	rowIndex := make(map[slotKey]int)
	seenStage := make(map[string]struct{})

	for _, e := range entries {
		if e.Stage == "" || e.Artist == "" || !e.Start.Before(e.End) {
			continue
		}
		slot := Slot{Start: e.Start, End: e.End}
		idx, ok := rowIndex[slot.key()]
		if !ok {
			idx = len(grid.Rows)
			rowIndex[slot.key()] = idx
			grid.Rows = append(grid.Rows, SlotRow{Slot: slot})
		}
		if _, taken := grid.Rows[idx].Artist(e.Stage); taken {
			continue
		}
		grid.Rows[idx].Cells = append(grid.Rows[idx].Cells, SlotCell{Stage: e.Stage, Artist: e.Artist})
		if _, ok := seenStage[e.Stage]; !ok {
			seenStage[e.Stage] = struct{}{}
			grid.Stages = append(grid.Stages, e.Stage)
		}
	}

	slices.SortStableFunc(grid.Rows, func(a, b SlotRow) int {
		if c := a.Slot.Start.Compare(b.Slot.Start); c != 0 {
			return c
		}
		return a.Slot.End.Compare(b.Slot.End)
	})
	return grid
}

// DistinctArtists returns artist names in first-seen order.
func DistinctArtists(entries []RawScheduleEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if strings.TrimSpace(e.Artist) == "" {
			continue
		}
		if _, ok := seen[e.Artist]; ok {
			continue
		}
		seen[e.Artist] = struct{}{}
		names = append(names, e.Artist)
	}
	return names
}
