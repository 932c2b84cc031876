package ports

import (
	"context"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

// ProfileCache stores the artist profiles built for a festival day.
// A stored entry is trusted indefinitely.
type ProfileCache interface {
	Get(ctx context.Context, festival, day string) (domain.ArtistProfiles, bool, error)
	Put(ctx context.Context, festival, day string, profiles domain.ArtistProfiles) error
}
