package ports

import (
	"context"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

// AudioFeatureProvider looks up track-level feature vectors for an artist.
// No match or an ambiguous match is reported as zero vectors and a nil error.
type AudioFeatureProvider interface {
	ArtistTrackFeatures(ctx context.Context, artist string) ([]domain.AudioFeatureVector, error)
}

// BatchAudioFeatureProvider is implemented by providers that can look up
// several artists at once. Artists without a match may be missing from the
// result or map to an empty slice.
type BatchAudioFeatureProvider interface {
	AudioFeatureProvider
	ArtistTrackFeaturesBatch(ctx context.Context, artists []string) (map[string][]domain.AudioFeatureVector, error)
}

// PlaylistFeatureProvider produces the averaged feature vector of a playlist.
type PlaylistFeatureProvider interface {
	PlaylistFeatures(ctx context.Context, playlistID string) (domain.AudioFeatureVector, error)
}
