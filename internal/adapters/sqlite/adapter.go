// Package sqlite provides a SQLite-backed implementation of the profile cache port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
)

// Adapter implements the profile cache port for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.ProfileCache = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// :memory: databases are per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Get returns the cached profiles of a festival day. A day that was never
// stored is a miss.
func (a *Adapter) Get(ctx context.Context, festival, day string) (domain.ArtistProfiles, bool, error) {
	var built string
	err := a.db.QueryRowContext(ctx,
		"SELECT built_at FROM festival_days WHERE festival = ? AND day = ?",
		festival, day,
	).Scan(&built)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load festival day: %w", err)
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT artist, danceability, energy, speechiness, acousticness,
			instrumentalness, liveness, valence
		FROM artist_profiles
		WHERE festival = ? AND day = ?
	`, festival, day)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load artist profiles: %w", err)
	}
	defer rows.Close()

	profiles := make(domain.ArtistProfiles)
	for rows.Next() {
		var artist string
		var v domain.AudioFeatureVector
		if err := rows.Scan(
			&artist,
			&v.Danceability,
			&v.Energy,
			&v.Speechiness,
			&v.Acousticness,
			&v.Instrumentalness,
			&v.Liveness,
			&v.Valence,
		); err != nil {
			return nil, false, fmt.Errorf("failed to scan artist profile: %w", err)
		}
		profiles[artist] = v
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("failed to iterate artist profiles: %w", err)
	}
	if len(profiles) == 0 {
		return nil, false, nil
	}

	return profiles, true, nil
}

// Put replaces the stored profiles of a festival day in one transaction.
func (a *Adapter) Put(ctx context.Context, festival, day string, profiles domain.ArtistProfiles) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net: auto-rollback if we error/panic before commit

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO festival_days (festival, day) VALUES (?, ?)
		ON CONFLICT(festival, day) DO UPDATE SET built_at = CURRENT_TIMESTAMP;
	`, festival, day); err != nil {
		return fmt.Errorf("failed to save festival day: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM artist_profiles WHERE festival = ? AND day = ?",
		festival, day,
	); err != nil {
		return fmt.Errorf("failed to clear old profiles: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO artist_profiles (
			festival, day, artist, danceability, energy, speechiness,
			acousticness, instrumentalness, liveness, valence
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare profile insert: %w", err)
	}
	defer stmt.Close()

	for _, artist := range profiles.Artists() {
		v := profiles[artist]
		if _, err := stmt.ExecContext(
			ctx,
			festival,
			day,
			artist,
			v.Danceability,
			v.Energy,
			v.Speechiness,
			v.Acousticness,
			v.Instrumentalness,
			v.Liveness,
			v.Valence,
		); err != nil {
			return fmt.Errorf("failed to save profile of %s: %w", artist, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS festival_days (
		festival TEXT NOT NULL,
		day TEXT NOT NULL,
		built_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (festival, day)
	);

	CREATE TABLE IF NOT EXISTS artist_profiles (
		festival TEXT NOT NULL,
		day TEXT NOT NULL,
		artist TEXT NOT NULL,
		danceability REAL NOT NULL,
		energy REAL NOT NULL,
		speechiness REAL NOT NULL,
		acousticness REAL NOT NULL,
		instrumentalness REAL NOT NULL,
		liveness REAL NOT NULL,
		valence REAL NOT NULL,
		PRIMARY KEY (festival, day, artist),
		FOREIGN KEY(festival, day) REFERENCES festival_days(festival, day) ON DELETE CASCADE
	);
	`
	_, err := a.db.Exec(query)
	return err
}
