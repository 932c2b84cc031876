// Package schedulefs serves festival schedules from JSON files named
// <festival>_<day>.json inside a data directory.
package schedulefs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
)

// Store reads schedules from disk on every call.
type Store struct {
	dir string
}

var _ ports.ScheduleProvider = (*Store)(nil)

// NewStore constructs a Store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Schedule loads the raw entries of a festival day in file order.
func (s *Store) Schedule(ctx context.Context, festival, day string) ([]domain.RawScheduleEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !validName(festival) || !validName(day) {
		return nil, fmt.Errorf("schedulefs: %s/%s: %w", festival, day, domain.ErrNotFound)
	}

	path := filepath.Join(s.dir, fileName(festival, day))
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("schedulefs: %s/%s: %w", festival, day, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("schedulefs: read %s: %w", path, err)
	}

	var entries []domain.RawScheduleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("schedulefs: decode %s: %w", path, err)
	}
	return entries, nil
}

// Days lists the festival days available in the data directory.
func (s *Store) Days() ([][2]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*_*.json"))
	if err != nil {
		return nil, fmt.Errorf("schedulefs: list: %w", err)
	}
	days := make([][2]string, 0, len(matches))
	for _, m := range matches {
		base := strings.TrimSuffix(filepath.Base(m), ".json")
		i := strings.LastIndex(base, "_")
		festival, day := base[:i], base[i+1:]
		if validName(festival) && validName(day) {
			days = append(days, [2]string{festival, day})
		}
	}
	return days, nil
}

func fileName(festival, day string) string {
	return festival + "_" + day + ".json"
}

// validName rejects empty names and anything that could leave the directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`) && !strings.Contains(name, "..")
}
