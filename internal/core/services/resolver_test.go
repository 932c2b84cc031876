package services

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

func hour(h int) time.Time {
	return time.Date(2024, time.August, 23, h, 0, 0, 0, time.UTC)
}

func entry(artist, stage string, start, end int) domain.ScheduleEntry {
	return domain.ScheduleEntry{Artist: artist, Stage: stage, Start: hour(start), End: hour(end)}
}

var playlistVec = domain.AudioFeatureVector{Energy: 1}

// scoreVec returns a unit vector whose similarity to playlistVec is sim.
func scoreVec(sim float64) domain.AudioFeatureVector {
	return domain.AudioFeatureVector{Energy: sim, Valence: math.Sqrt(1 - sim*sim)}
}

func TestSlotResolver_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		entries  []domain.ScheduleEntry
		profiles domain.ArtistProfiles
		want     []domain.Performance
	}{
		{
			name: "highest score wins the slot",
			entries: []domain.ScheduleEntry{
				entry("A", "Main", 10, 11),
				entry("B", "Second", 10, 11),
			},
			profiles: domain.ArtistProfiles{"A": scoreVec(0.2), "B": scoreVec(0.9)},
			want: []domain.Performance{
				{Stage: "Second", Artist: "B", Start: hour(10), End: hour(11)},
			},
		},
		{
			name: "slot without profiled artists is left out",
			entries: []domain.ScheduleEntry{
				entry("A", "Main", 10, 11),
				entry("C", "Main", 12, 13),
			},
			profiles: domain.ArtistProfiles{"A": scoreVec(0.5)},
			want: []domain.Performance{
				{Stage: "Main", Artist: "A", Start: hour(10), End: hour(11)},
			},
		},
		{
			name: "tie goes to the artist listed first",
			entries: []domain.ScheduleEntry{
				entry("Second", "Z Stage", 10, 11),
				entry("First", "A Stage", 10, 11),
			},
			profiles: domain.ArtistProfiles{"First": scoreVec(0.7), "Second": scoreVec(0.7)},
			want: []domain.Performance{
				{Stage: "Z Stage", Artist: "Second", Start: hour(10), End: hour(11)},
			},
		},
		{
			name: "unprofiled artist never wins even when listed first",
			entries: []domain.ScheduleEntry{
				entry("Zzz Unknown", "Main", 10, 11),
				entry("Known", "Second", 10, 11),
			},
			profiles: domain.ArtistProfiles{"Known": scoreVec(0.1)},
			want: []domain.Performance{
				{Stage: "Second", Artist: "Known", Start: hour(10), End: hour(11)},
			},
		},
		{
			name: "slots sharing a start compete together",
			entries: []domain.ScheduleEntry{
				entry("Short", "Main", 10, 11),
				entry("Long", "Tent", 10, 12),
			},
			profiles: domain.ArtistProfiles{"Short": scoreVec(0.3), "Long": scoreVec(0.8)},
			want: []domain.Performance{
				{Stage: "Tent", Artist: "Long", Start: hour(10), End: hour(12)},
			},
		},
		{
			name: "winners are ordered by stage then start",
			entries: []domain.ScheduleEntry{
				entry("Main Late", "Main", 14, 15),
				entry("Second Early", "Second", 10, 11),
				entry("Main Early", "Main", 10, 11),
				entry("Second Mid", "Second", 12, 13),
				entry("Main Mid", "Main", 12, 13),
			},
			profiles: domain.ArtistProfiles{
				"Main Late":    scoreVec(0.5),
				"Second Early": scoreVec(0.9),
				"Main Early":   scoreVec(0.1),
				"Second Mid":   scoreVec(0.2),
				"Main Mid":     scoreVec(0.6),
			},
			want: []domain.Performance{
				{Stage: "Main", Artist: "Main Mid", Start: hour(12), End: hour(13)},
				{Stage: "Main", Artist: "Main Late", Start: hour(14), End: hour(15)},
				{Stage: "Second", Artist: "Second Early", Start: hour(10), End: hour(11)},
			},
		},
		{
			name: "degenerate profile is skipped without aborting the slot",
			entries: []domain.ScheduleEntry{
				entry("Silent", "Main", 10, 11),
				entry("Loud", "Second", 10, 11),
			},
			profiles: domain.ArtistProfiles{"Silent": {}, "Loud": scoreVec(0.1)},
			want: []domain.Performance{
				{Stage: "Second", Artist: "Loud", Start: hour(10), End: hour(11)},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			grid := domain.Pivot(tc.entries)
			got, err := NewSlotResolver().Resolve(grid, tc.profiles, playlistVec)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual([]domain.Performance(got), tc.want) {
				t.Fatalf("program mismatch:\n got  %+v\n want %+v", got, tc.want)
			}
		})
	}
}

func TestSlotResolver_Errors(t *testing.T) {
	grid := domain.Pivot([]domain.ScheduleEntry{entry("A", "Main", 10, 11)})

	tests := []struct {
		name     string
		profiles domain.ArtistProfiles
		playlist domain.AudioFeatureVector
		wantErr  error
	}{
		{name: "nil profiles", profiles: nil, playlist: playlistVec, wantErr: domain.ErrInsufficientData},
		{name: "empty profiles", profiles: domain.ArtistProfiles{}, playlist: playlistVec, wantErr: domain.ErrInsufficientData},
		{name: "zero playlist vector", profiles: domain.ArtistProfiles{"A": scoreVec(0.5)}, playlist: domain.AudioFeatureVector{}, wantErr: domain.ErrInvalidVector},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewSlotResolver().Resolve(grid, tc.profiles, tc.playlist)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if got != nil {
				t.Fatalf("expected no program, got %+v", got)
			}
		})
	}
}

func TestSlotResolver_EmptyProgramIsValid(t *testing.T) {
	grid := domain.Pivot([]domain.ScheduleEntry{entry("C", "Main", 12, 13)})
	got, err := NewSlotResolver().Resolve(grid, domain.ArtistProfiles{"Elsewhere": scoreVec(0.4)}, playlistVec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil program, got %#v", got)
	}
}

func TestSlotResolver_Deterministic(t *testing.T) {
	entries := []domain.ScheduleEntry{
		entry("A", "Main", 10, 11),
		entry("B", "Second", 10, 11),
		entry("C", "Main", 11, 12),
		entry("D", "Second", 11, 12),
	}
	profiles := domain.ArtistProfiles{"A": scoreVec(0.4), "B": scoreVec(0.4), "C": scoreVec(0.3), "D": scoreVec(0.8)}
	r := NewSlotResolver()

	first, err := r.Resolve(domain.Pivot(entries), profiles, playlistVec)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := r.Resolve(domain.Pivot(entries), profiles, playlistVec)
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("resolve %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestSlotResolver_Candidates(t *testing.T) {
	grid := domain.Pivot([]domain.ScheduleEntry{
		entry("A", "Main", 10, 11),
		entry("Unknown", "Second", 10, 11),
	})
	got, err := NewSlotResolver().Candidates(grid, domain.ArtistProfiles{"A": scoreVec(0.25)}, playlistVec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Artist != "A" {
		t.Fatalf("unexpected candidates %+v", got)
	}
	if d := got[0].Score - 0.25; d > 1e-9 || d < -1e-9 {
		t.Fatalf("score: got %v, want 0.25", got[0].Score)
	}
}
