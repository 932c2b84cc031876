package schedulefs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

const friday = `[
  {"artist": "Daft Punk", "stage": "Main", "start": "2024-08-23T20:00:00", "end": "2024-08-23T21:30:00"},
  {"artist": "The Cure", "stage": "Second", "start": "2024-08-23T20:00:00", "end": "2024-08-23T21:00:00"}
]`

func writeSchedule(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestStore_Schedule(t *testing.T) {
	dir := t.TempDir()
	writeSchedule(t, dir, "pukkelpop_friday.json", friday)
	writeSchedule(t, dir, "broken_friday.json", `{"not": "a list"`)

	store := NewStore(dir)

	t.Run("reads entries in file order", func(t *testing.T) {
		got, err := store.Schedule(context.Background(), "pukkelpop", "friday")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []domain.RawScheduleEntry{
			{Artist: "Daft Punk", Stage: "Main", Start: "2024-08-23T20:00:00", End: "2024-08-23T21:30:00"},
			{Artist: "The Cure", Stage: "Second", Start: "2024-08-23T20:00:00", End: "2024-08-23T21:00:00"},
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("got %+v, want %+v", got, want)
		}
	})

	notFound := []struct {
		name     string
		festival string
		day      string
	}{
		{name: "unknown day", festival: "pukkelpop", day: "sunday"},
		{name: "traversal in festival", festival: "../etc", day: "friday"},
		{name: "separator in day", festival: "pukkelpop", day: "a/b"},
		{name: "empty festival", festival: "", day: "friday"},
	}
	for _, tt := range notFound {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Schedule(context.Background(), tt.festival, tt.day)
			if !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}

	t.Run("malformed file", func(t *testing.T) {
		_, err := store.Schedule(context.Background(), "broken", "friday")
		if err == nil || errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("expected decode error, got %v", err)
		}
	})
}

func TestStore_Days(t *testing.T) {
	dir := t.TempDir()
	writeSchedule(t, dir, "pukkelpop_friday.json", friday)
	writeSchedule(t, dir, "rock_werchter_saturday.json", "[]")
	writeSchedule(t, dir, "notes.txt", "")

	got, err := NewStore(dir).Days()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][2]string{{"pukkelpop", "friday"}, {"rock_werchter", "saturday"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
