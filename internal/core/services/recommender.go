package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/metrics"
)

// Recommender coordinates the schedule, the feature store and the resolver
// for a single request.
type Recommender struct {
	schedules ports.ScheduleProvider
	playlists ports.PlaylistFeatureProvider
	store     *FeatureStore
	resolver  *SlotResolver
}

// NewRecommender constructs a Recommender.
func NewRecommender(schedules ports.ScheduleProvider, playlists ports.PlaylistFeatureProvider, store *FeatureStore, resolver *SlotResolver) *Recommender {
	return &Recommender{
		schedules: schedules,
		playlists: playlists,
		store:     store,
		resolver:  resolver,
	}
}

// Recommend projects the best matching act per start time of a festival
// day onto the schedule.
func (r *Recommender) Recommend(ctx context.Context, festival, day string, playlist domain.AudioFeatureVector) (domain.RecommendedProgram, error) {
	program, err := r.recommend(ctx, festival, day, playlist)
	metrics.ProgramsResolved.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		return nil, err
	}
	logging.Ctx(ctx).Info().
		Str("festival", festival).
		Str("day", day).
		Int("recommended", len(program)).
		Msg("resolved program")
	return program, nil
}

func (r *Recommender) recommend(ctx context.Context, festival, day string, playlist domain.AudioFeatureVector) (domain.RecommendedProgram, error) {
	grid, err := r.Grid(ctx, festival, day)
	if err != nil {
		return nil, err
	}

	profiles, err := r.store.Profiles(ctx, festival, day)
	if err != nil {
		return nil, err
	}

	return r.resolver.Resolve(grid, profiles, playlist)
}

// RecommendForPlaylist resolves the program for a catalog playlist.
func (r *Recommender) RecommendForPlaylist(ctx context.Context, festival, day, playlistID string) (domain.RecommendedProgram, error) {
	vector, err := r.playlistVector(ctx, playlistID)
	if err != nil {
		metrics.ProgramsResolved.WithLabelValues(outcome(err)).Inc()
		return nil, err
	}
	return r.Recommend(ctx, festival, day, vector)
}

// ArtistScores scores every profiled artist of the day against a playlist,
// most similar first.
func (r *Recommender) ArtistScores(ctx context.Context, festival, day, playlistID string) ([]domain.ArtistScore, error) {
	vector, err := r.playlistVector(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	profiles, err := r.store.Profiles(ctx, festival, day)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("service: no artist profiles to score: %w", domain.ErrInsufficientData)
	}

	scores := make([]domain.ArtistScore, 0, len(profiles))
	for _, artist := range profiles.Artists() {
		score, err := domain.Cosine(profiles[artist], vector)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("artist", artist).Msg("skipping artist with unusable profile")
			continue
		}
		scores = append(scores, domain.ArtistScore{Artist: artist, Score: score})
	}
	domain.SortArtistScores(scores)
	return scores, nil
}

// ArtistProfiles returns the day's artist profiles, building them if needed.
func (r *Recommender) ArtistProfiles(ctx context.Context, festival, day string) (domain.ArtistProfiles, error) {
	profiles, err := r.store.Profiles(ctx, festival, day)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("service: no artist profiles for %s %s: %w", festival, day, domain.ErrInsufficientData)
	}
	return profiles, nil
}

// Grid returns the day's schedule pivoted into slots, without scoring.
func (r *Recommender) Grid(ctx context.Context, festival, day string) (domain.StageSlotGrid, error) {
	entries, err := r.entries(ctx, festival, day)
	if err != nil {
		return domain.StageSlotGrid{}, err
	}
	return domain.Pivot(entries), nil
}

// Timetable returns the day's schedule grouped by stage, without scoring.
func (r *Recommender) Timetable(ctx context.Context, festival, day string) (domain.Timetable, error) {
	entries, err := r.entries(ctx, festival, day)
	if err != nil {
		return domain.Timetable{}, err
	}
	return domain.BuildTimetable(entries), nil
}

func (r *Recommender) entries(ctx context.Context, festival, day string) ([]domain.ScheduleEntry, error) {
	raw, err := r.schedules.Schedule(ctx, festival, day)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load schedule: %w", err)
	}
	entries := domain.NormalizeSchedule(raw)
	if dropped := len(raw) - len(entries); dropped > 0 {
		logging.Ctx(ctx).Debug().Int("dropped", dropped).Msg("dropped malformed schedule rows")
	}
	return entries, nil
}

func (r *Recommender) playlistVector(ctx context.Context, playlistID string) (domain.AudioFeatureVector, error) {
	if playlistID == "" {
		return domain.AudioFeatureVector{}, errors.New("service: playlist id cannot be empty")
	}
	if r.playlists == nil {
		return domain.AudioFeatureVector{}, errors.New("service: playlist provider not configured")
	}
	vector, err := r.playlists.PlaylistFeatures(ctx, playlistID)
	if err != nil {
		return domain.AudioFeatureVector{}, fmt.Errorf("service: failed to analyse playlist: %w", err)
	}
	return vector, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, domain.ErrInvalidVector):
		return "invalid_vector"
	default:
		return "error"
	}
}
