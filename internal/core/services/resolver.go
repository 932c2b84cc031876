package services

import (
	"fmt"
	"time"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/metrics"
)

// SlotResolver picks the best matching act for every start time of a
// festival day.
type SlotResolver struct{}

// NewSlotResolver constructs a SlotResolver.
func NewSlotResolver() *SlotResolver {
	return &SlotResolver{}
}

// Candidates scores every scheduled artist that has a profile, in grid
// order. Artists without a profile are skipped, and so is an artist whose
// profile cannot be compared.
func (r *SlotResolver) Candidates(grid domain.StageSlotGrid, profiles domain.ArtistProfiles, playlist domain.AudioFeatureVector) ([]domain.ScoredCandidate, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("service: no artist profiles to score: %w", domain.ErrInsufficientData)
	}
	if err := playlist.Validate(); err != nil {
		return nil, fmt.Errorf("service: playlist vector: %w", err)
	}

	var candidates []domain.ScoredCandidate
	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			profile, ok := profiles[cell.Artist]
			if !ok {
				continue
			}
			score, err := domain.Cosine(profile, playlist)
			if err != nil {
				logging.Warn().Err(err).Str("artist", cell.Artist).Msg("skipping candidate with unusable profile")
				continue
			}
			candidates = append(candidates, domain.ScoredCandidate{
				Stage:  cell.Stage,
				Artist: cell.Artist,
				Score:  score,
				Start:  row.Slot.Start,
				End:    row.Slot.End,
			})
		}
	}
	return candidates, nil
}

// Resolve returns one winner per distinct start time, ordered by
// (stage, start, end). The highest score wins; on a tie the candidate seen
// first in grid order wins. Start times without a scorable artist are left
// out of the program.
func (r *SlotResolver) Resolve(grid domain.StageSlotGrid, profiles domain.ArtistProfiles, playlist domain.AudioFeatureVector) (domain.RecommendedProgram, error) {
	started := time.Now()
	defer func() { metrics.ResolveDuration.Observe(time.Since(started).Seconds()) }()

	candidates, err := r.Candidates(grid, profiles, playlist)
	if err != nil {
		return nil, err
	}

	program := domain.RecommendedProgram{}
	for _, winner := range bestPerStart(candidates) {
		program = append(program, winner.Performance())
	}
	domain.SortPerformances(program)
	return program, nil
}

// bestPerStart keeps the first highest-scoring candidate of each start time.
func bestPerStart(candidates []domain.ScoredCandidate) []domain.ScoredCandidate {
	var winners []domain.ScoredCandidate
	index := make(map[int64]int)
	for _, c := range candidates {
		key := c.Start.UnixNano()
		i, ok := index[key]
		if !ok {
			index[key] = len(winners)
			winners = append(winners, c)
			continue
		}
		if c.Score > winners[i].Score {
			winners[i] = c
		}
	}
	return winners
}
