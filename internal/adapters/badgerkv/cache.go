// Package badgerkv stores artist profiles in an embedded BadgerDB.
package badgerkv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
	"github.com/ewilliams-labs/lineup/internal/logging"
)

const profileKeyPrefix = "profiles:"

// entry is the stored value of a festival day.
type entry struct {
	BuiltAt  time.Time             `json:"built_at"`
	Profiles domain.ArtistProfiles `json:"profiles"`
}

// Cache implements the profile cache port on top of BadgerDB.
type Cache struct {
	db *badger.DB
}

var _ ports.ProfileCache = (*Cache)(nil)

// Open opens (or creates) a BadgerDB at path.
func Open(path string) (*Cache, error) {
	opts := badger.DefaultOptions(path).WithLogger(badgerLogger{logging.WithComponent("badger")})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerkv: open %s: %w", path, err)
	}
	return &Cache{db: db}, nil
}

// NewCache wraps an already opened database.
func NewCache(db *badger.DB) *Cache {
	return &Cache{db: db}
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get returns the profiles stored for a festival day.
func (c *Cache) Get(_ context.Context, festival, day string) (domain.ArtistProfiles, bool, error) {
	var e entry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(profileKey(festival, day))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("badgerkv: get %s/%s: %w", festival, day, err)
	}
	if len(e.Profiles) == 0 {
		return nil, false, nil
	}
	return e.Profiles, true, nil
}

// Put replaces the profiles of a festival day.
func (c *Cache) Put(_ context.Context, festival, day string, profiles domain.ArtistProfiles) error {
	data, err := json.Marshal(entry{BuiltAt: time.Now().UTC(), Profiles: profiles})
	if err != nil {
		return fmt.Errorf("badgerkv: marshal profiles: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(profileKey(festival, day), data); err != nil {
			return fmt.Errorf("badgerkv: set %s/%s: %w", festival, day, err)
		}
		return nil
	})
}

func profileKey(festival, day string) []byte {
	return []byte(profileKeyPrefix + festival + ":" + day)
}

// badgerLogger routes badger's own logging through zerolog.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...any)   { l.log.Error().Msgf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...any) { l.log.Warn().Msgf(format, args...) }
func (l badgerLogger) Infof(format string, args ...any)    { l.log.Debug().Msgf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.log.Trace().Msgf(format, args...) }
