package services

import (
	"context"
	"fmt"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/metrics"
)

// FeatureStore builds and caches the artist profiles of a festival day.
type FeatureStore struct {
	schedules ports.ScheduleProvider
	features  ports.AudioFeatureProvider
	cache     ports.ProfileCache
}

// NewFeatureStore constructs a FeatureStore.
func NewFeatureStore(schedules ports.ScheduleProvider, features ports.AudioFeatureProvider, cache ports.ProfileCache) *FeatureStore {
	return &FeatureStore{
		schedules: schedules,
		features:  features,
		cache:     cache,
	}
}

// Profiles returns the artist profiles of a festival day. A cached entry is
// returned as is. Otherwise the profiles are built from the day's schedule,
// artists without usable feature data are left out, and a non-empty result
// is cached. A nil map with a nil error means no artist could be profiled.
func (s *FeatureStore) Profiles(ctx context.Context, festival, day string) (domain.ArtistProfiles, error) {
	logger := logging.Ctx(ctx).With().Str("festival", festival).Str("day", day).Logger()

	cached, ok, err := s.cache.Get(ctx, festival, day)
	if err != nil {
		logger.Warn().Err(err).Msg("profile cache read failed, rebuilding")
	} else if ok {
		metrics.ProfileCacheHits.Inc()
		logger.Debug().Int("artists", len(cached)).Msg("profile cache hit")
		return cached, nil
	}
	metrics.ProfileCacheMisses.Inc()

	raw, err := s.schedules.Schedule(ctx, festival, day)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load schedule: %w", err)
	}

	artists := domain.DistinctArtists(raw)
	tracks, err := s.lookup(ctx, artists)
	if err != nil {
		return nil, err
	}

	profiles := make(domain.ArtistProfiles, len(artists))
	for _, artist := range artists {
		avg, ok := domain.AverageFeatures(finiteVectors(tracks[artist]))
		if !ok {
			metrics.ArtistLookups.WithLabelValues("no_match").Inc()
			logger.Debug().Str("artist", artist).Msg("no feature data, skipping artist")
			continue
		}
		if err := avg.Validate(); err != nil {
			metrics.ArtistLookups.WithLabelValues("no_match").Inc()
			logger.Debug().Err(err).Str("artist", artist).Msg("unusable profile, skipping artist")
			continue
		}
		metrics.ArtistLookups.WithLabelValues("profiled").Inc()
		profiles[artist] = avg
	}

	if len(profiles) == 0 {
		logger.Warn().Int("artists", len(artists)).Msg("no artist of the day could be profiled")
		return nil, nil
	}

	if err := s.cache.Put(ctx, festival, day, profiles); err != nil {
		logger.Warn().Err(err).Msg("profile cache write failed")
	}
	logger.Info().Int("artists", len(artists)).Int("profiled", len(profiles)).Msg("built artist profiles")
	return profiles, nil
}

// lookup fetches track features for every artist. Individual failures are
// logged and leave the artist without tracks.
func (s *FeatureStore) lookup(ctx context.Context, artists []string) (map[string][]domain.AudioFeatureVector, error) {
	if batch, ok := s.features.(ports.BatchAudioFeatureProvider); ok {
		tracks, err := batch.ArtistTrackFeaturesBatch(ctx, artists)
		if err == nil {
			return tracks, nil
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("service: artist lookup canceled: %w", ctx.Err())
		}
		logging.Ctx(ctx).Warn().Err(err).Msg("batch artist lookup failed, falling back to single lookups")
	}

	tracks := make(map[string][]domain.AudioFeatureVector, len(artists))
	for _, artist := range artists {
		vectors, err := s.features.ArtistTrackFeatures(ctx, artist)
		if err != nil {
			metrics.ArtistLookups.WithLabelValues("error").Inc()
			logging.Ctx(ctx).Warn().Err(err).Str("artist", artist).Msg("artist lookup failed, skipping artist")
			continue
		}
		tracks[artist] = vectors
	}
	return tracks, nil
}

func finiteVectors(vectors []domain.AudioFeatureVector) []domain.AudioFeatureVector {
	out := make([]domain.AudioFeatureVector, 0, len(vectors))
	for _, v := range vectors {
		if v.Finite() {
			out = append(out, v)
		}
	}
	return out
}
