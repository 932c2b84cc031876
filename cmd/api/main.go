package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ewilliams-labs/lineup/internal/adapters/badgerkv"
	"github.com/ewilliams-labs/lineup/internal/adapters/memory"
	"github.com/ewilliams-labs/lineup/internal/adapters/rest"
	"github.com/ewilliams-labs/lineup/internal/adapters/schedulefs"
	"github.com/ewilliams-labs/lineup/internal/adapters/spotify"
	"github.com/ewilliams-labs/lineup/internal/adapters/sqlite"
	"github.com/ewilliams-labs/lineup/internal/config"
	"github.com/ewilliams-labs/lineup/internal/core/ports"
	"github.com/ewilliams-labs/lineup/internal/core/services"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/worker"
)

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("lineup api stopped")
	}
}

func run() error {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Driven adapters
	cache, closeCache, err := openCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer closeCache.Close()

	schedules := schedulefs.NewStore(cfg.Schedule.DataDir)

	sc := cfg.Spotify
	httpClient := spotify.NewCredentialsHTTPClient(context.Background(), sc.ClientID, sc.ClientSecret, sc.TokenURL, sc.RequestTimeout)
	catalog := spotify.NewClient(httpClient, sc.BaseURL, spotify.Options{
		Market:             sc.Market,
		TracksPerArtist:    sc.TracksPerArtist,
		PlaylistTrackLimit: sc.PlaylistTrackLimit,
		MaxRetries:         sc.MaxRetries,
		RetryBackoff:       sc.RetryBackoff,
		RequestsPerSecond:  sc.RequestsPerSecond,
		LookupConcurrency:  sc.LookupConcurrency,
		BreakerFailures:    sc.BreakerFailures,
		BreakerTimeout:     sc.BreakerTimeout,
	})

	// 3. Core
	store := services.NewFeatureStore(schedules, catalog, cache)
	svc := services.NewRecommender(schedules, catalog, store, services.NewSlotResolver())

	// 4. Background warm-up
	pool := worker.NewPool(store, cfg.Worker.QueueSize, 0)
	pool.Start(cfg.Worker.Workers)
	defer pool.Stop()
	for _, target := range cfg.WarmTargets() {
		pool.Submit(worker.Job{Festival: target[0], Day: target[1]})
	}

	// 5. Driving adapter
	handler := rest.NewHandler(svc, pool, rest.Config{
		CORSOrigins: cfg.Server.CORSOrigins,
		Days:        schedules,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", cfg.Server.Addr).Str("cache", cfg.Cache.Driver).Msg("lineup api listening")
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		logging.Info().Msg("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openCache builds the profile cache selected by the configuration.
func openCache(cfg config.CacheConfig) (ports.ProfileCache, io.Closer, error) {
	switch cfg.Driver {
	case "memory":
		return memory.NewCache(), nopCloser{}, nil
	case "sqlite":
		a, err := sqlite.NewAdapter(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize sqlite cache: %w", err)
		}
		return a, a, nil
	case "badger":
		c, err := badgerkv.Open(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize badger cache: %w", err)
		}
		return c, c, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache driver: %s", cfg.Driver)
	}
}
