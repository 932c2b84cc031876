package badgerkv

import (
	"context"
	"reflect"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	c := NewCache(db)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCache_GetPut(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	if _, ok, err := c.Get(ctx, "pukkelpop", "friday"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	profiles := domain.ArtistProfiles{
		"Daft Punk": {Danceability: 0.8, Energy: 0.6, Speechiness: 0.1, Acousticness: 0.2, Instrumentalness: 0.4, Liveness: 0.1, Valence: 0.9},
	}
	if err := c.Put(ctx, "pukkelpop", "friday", profiles); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "pukkelpop", "friday")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !reflect.DeepEqual(got, profiles) {
		t.Fatalf("got %+v, want %+v", got, profiles)
	}

	if _, ok, _ := c.Get(ctx, "pukkelpop", "saturday"); ok {
		t.Fatalf("days must not share entries")
	}
}

func TestCache_PutReplaces(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(t)

	_ = c.Put(ctx, "f", "d", domain.ArtistProfiles{"A": {Energy: 1}})
	if err := c.Put(ctx, "f", "d", domain.ArtistProfiles{"B": {Valence: 1}}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, _, err := c.Get(ctx, "f", "d")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, domain.ArtistProfiles{"B": {Valence: 1}}) {
		t.Fatalf("got %+v", got)
	}
}

func TestProfileKey(t *testing.T) {
	if got := string(profileKey("pukkelpop", "friday")); got != "profiles:pukkelpop:friday" {
		t.Fatalf("got %q", got)
	}
}
