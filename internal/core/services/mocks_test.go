package services

import (
	"context"
	"errors"
	"sync"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

// --- Mocks ---

// mockSchedules serves raw schedules keyed by festival/day.
type mockSchedules struct {
	days  map[string][]domain.RawScheduleEntry
	calls int
}

func (m *mockSchedules) Schedule(ctx context.Context, festival, day string) ([]domain.RawScheduleEntry, error) {
	m.calls++
	raw, ok := m.days[festival+"/"+day]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

// mockFeatures returns canned track vectors per artist.
type mockFeatures struct {
	tracks map[string][]domain.AudioFeatureVector
	errs   map[string]error
	calls  []string
}

func (m *mockFeatures) ArtistTrackFeatures(ctx context.Context, artist string) ([]domain.AudioFeatureVector, error) {
	m.calls = append(m.calls, artist)
	if err := m.errs[artist]; err != nil {
		return nil, err
	}
	return m.tracks[artist], nil
}

// mockBatchFeatures adds a batch lookup on top of mockFeatures.
type mockBatchFeatures struct {
	mockFeatures
	batchErr   error
	batchCalls int
}

func (m *mockBatchFeatures) ArtistTrackFeaturesBatch(ctx context.Context, artists []string) (map[string][]domain.AudioFeatureVector, error) {
	m.batchCalls++
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make(map[string][]domain.AudioFeatureVector)
	for _, a := range artists {
		if v, ok := m.tracks[a]; ok {
			out[a] = v
		}
	}
	return out, nil
}

// mockCache is an in-memory ProfileCache that records writes.
type mockCache struct {
	mu      sync.Mutex
	entries map[string]domain.ArtistProfiles
	getErr  error
	putErr  error
	puts    int
}

func newMockCache() *mockCache {
	return &mockCache{entries: make(map[string]domain.ArtistProfiles)}
}

func (m *mockCache) Get(ctx context.Context, festival, day string) (domain.ArtistProfiles, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	p, ok := m.entries[festival+"/"+day]
	return p, ok, nil
}

func (m *mockCache) Put(ctx context.Context, festival, day string, profiles domain.ArtistProfiles) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[festival+"/"+day] = profiles
	return nil
}

// mockPlaylists returns a fixed vector for every playlist.
type mockPlaylists struct {
	vector domain.AudioFeatureVector
	err    error
}

func (m *mockPlaylists) PlaylistFeatures(ctx context.Context, playlistID string) (domain.AudioFeatureVector, error) {
	if m.err != nil {
		return domain.AudioFeatureVector{}, m.err
	}
	return m.vector, nil
}

var errLookup = errors.New("catalog unavailable")
