package domain

import (
	"cmp"
	"slices"
	"time"
)

// ScoredCandidate is a scheduled artist with a known profile, scored
// against a playlist.
type ScoredCandidate struct {
	Stage  string    `json:"stage"`
	Artist string    `json:"artist"`
	Score  float64   `json:"score"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Performance returns the candidate without its score.
func (c ScoredCandidate) Performance() Performance {
	return Performance{Stage: c.Stage, Artist: c.Artist, Start: c.Start, End: c.End}
}

// Performance is a single act on a stage.
type Performance struct {
	Stage  string    `json:"stage"`
	Artist string    `json:"artist"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// RecommendedProgram holds one recommended act per start time, ordered by
// (stage, start, end).
type RecommendedProgram []Performance

// Artists returns the recommended artist names in program order.
func (p RecommendedProgram) Artists() []string {
	names := make([]string, len(p))
	for i, perf := range p {
		names[i] = perf.Artist
	}
	return names
}

// SortPerformances orders performances by (stage, start, end), keeping the
// relative order of equal elements.
func SortPerformances(perfs []Performance) {
	slices.SortStableFunc(perfs, func(a, b Performance) int {
		if c := cmp.Compare(a.Stage, b.Stage); c != 0 {
			return c
		}
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return a.End.Compare(b.End)
	})
}

// TimetableSlot is a performance as shown in a stage's column.
type TimetableSlot struct {
	Artist string    `json:"artist"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// Timetable groups a festival day by stage.
type Timetable struct {
	Stages map[string][]TimetableSlot `json:"timetable"`
}

// BuildTimetable groups entries by stage, each ordered by (start, end).
func BuildTimetable(entries []ScheduleEntry) Timetable {
	tt := Timetable{Stages: make(map[string][]TimetableSlot)}
	for _, e := range entries {
		tt.Stages[e.Stage] = append(tt.Stages[e.Stage], TimetableSlot{
			Artist: e.Artist,
			Start:  e.Start,
			End:    e.End,
		})
	}
	for _, slots := range tt.Stages {
		slices.SortStableFunc(slots, func(a, b TimetableSlot) int {
			if c := a.Start.Compare(b.Start); c != 0 {
				return c
			}
			return a.End.Compare(b.End)
		})
	}
	return tt
}

// ArtistScore is an artist's similarity to a playlist.
type ArtistScore struct {
	Artist string  `json:"artist"`
	Score  float64 `json:"score"`
}

// SortArtistScores orders scores from most to least similar, then by name.
func SortArtistScores(scores []ArtistScore) {
	slices.SortFunc(scores, func(a, b ArtistScore) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.Artist, b.Artist)
	})
}
