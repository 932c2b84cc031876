package ports

import (
	"context"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

// ScheduleProvider returns the raw schedule of a festival day in source
// order. Unknown festival days fail with domain.ErrNotFound.
type ScheduleProvider interface {
	Schedule(ctx context.Context, festival, day string) ([]domain.RawScheduleEntry, error)
}
