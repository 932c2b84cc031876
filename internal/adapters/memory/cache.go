// Package memory provides a process-local profile cache.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
)

type key struct {
	festival string
	day      string
}

// Cache keeps profiles in a map for the lifetime of the process.
type Cache struct {
	mu      sync.RWMutex
	entries map[key]domain.ArtistProfiles
}

var _ ports.ProfileCache = (*Cache)(nil)

// NewCache constructs an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[key]domain.ArtistProfiles)}
}

// Get returns a copy of the stored profiles.
func (c *Cache) Get(_ context.Context, festival, day string) (domain.ArtistProfiles, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	profiles, ok := c.entries[key{festival, day}]
	if !ok {
		return nil, false, nil
	}
	return maps.Clone(profiles), true, nil
}

// Put replaces the stored profiles of a festival day.
func (c *Cache) Put(_ context.Context, festival, day string, profiles domain.ArtistProfiles) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key{festival, day}] = maps.Clone(profiles)
	return nil
}
