package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(":memory:")
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

var fridayProfiles = domain.ArtistProfiles{
	"Daft Punk": {Danceability: 0.8, Energy: 0.6, Speechiness: 0.1, Acousticness: 0.2, Instrumentalness: 0.4, Liveness: 0.1, Valence: 0.9},
	"The Cure":  {Danceability: 0.2, Energy: 0.8, Speechiness: 0.05, Acousticness: 0.1, Instrumentalness: 0.3, Liveness: 0.2, Valence: 0.1},
}

func TestAdapter_GetPut(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, a *Adapter)
		festival string
		day      string
		wantOK   bool
		want     domain.ArtistProfiles
	}{
		{
			name:     "miss on empty cache",
			setup:    func(t *testing.T, a *Adapter) {},
			festival: "pukkelpop",
			day:      "friday",
		},
		{
			name: "round trips every feature",
			setup: func(t *testing.T, a *Adapter) {
				if err := a.Put(context.Background(), "pukkelpop", "friday", fridayProfiles); err != nil {
					t.Fatalf("put: %v", err)
				}
			},
			festival: "pukkelpop",
			day:      "friday",
			wantOK:   true,
			want:     fridayProfiles,
		},
		{
			name: "days are independent",
			setup: func(t *testing.T, a *Adapter) {
				if err := a.Put(context.Background(), "pukkelpop", "friday", fridayProfiles); err != nil {
					t.Fatalf("put: %v", err)
				}
			},
			festival: "pukkelpop",
			day:      "saturday",
		},
		{
			name: "second put replaces the day",
			setup: func(t *testing.T, a *Adapter) {
				ctx := context.Background()
				if err := a.Put(ctx, "pukkelpop", "friday", fridayProfiles); err != nil {
					t.Fatalf("put: %v", err)
				}
				if err := a.Put(ctx, "pukkelpop", "friday", domain.ArtistProfiles{"Solo": {Energy: 1}}); err != nil {
					t.Fatalf("put: %v", err)
				}
			},
			festival: "pukkelpop",
			day:      "friday",
			wantOK:   true,
			want:     domain.ArtistProfiles{"Solo": {Energy: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t)
			tt.setup(t, a)

			got, ok, err := a.Get(context.Background(), tt.festival, tt.day)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if ok != tt.wantOK {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantOK)
			}
			if tt.wantOK && !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestAdapter_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.db")

	a, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := a.Put(context.Background(), "pukkelpop", "friday", fridayProfiles); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := NewAdapter(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer b.Close()

	got, ok, err := b.Get(context.Background(), "pukkelpop", "friday")
	if err != nil || !ok {
		t.Fatalf("expected hit after reopen, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, fridayProfiles) {
		t.Fatalf("got %+v, want %+v", got, fridayProfiles)
	}
}
