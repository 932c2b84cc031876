// Package config loads service configuration from defaults, an optional
// YAML file and LINEUP_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LINEUP_"

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Spotify  SpotifyConfig  `koanf:"spotify"`
	Schedule ScheduleConfig `koanf:"schedule"`
	Cache    CacheConfig    `koanf:"cache"`
	Worker   WorkerConfig   `koanf:"worker"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Addr              string        `koanf:"addr" validate:"required"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout" validate:"gt=0"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

type SpotifyConfig struct {
	ClientID           string        `koanf:"client_id" validate:"required"`
	ClientSecret       string        `koanf:"client_secret" validate:"required"`
	BaseURL            string        `koanf:"base_url" validate:"required,url"`
	TokenURL           string        `koanf:"token_url" validate:"required,url"`
	Market             string        `koanf:"market" validate:"required,len=2"`
	TracksPerArtist    int           `koanf:"tracks_per_artist" validate:"gte=1,lte=10"`
	PlaylistTrackLimit int           `koanf:"playlist_track_limit" validate:"gte=1,lte=100"`
	MaxRetries         int           `koanf:"max_retries" validate:"gte=1"`
	RetryBackoff       time.Duration `koanf:"retry_backoff" validate:"gt=0"`
	RequestsPerSecond  float64       `koanf:"requests_per_second" validate:"gt=0"`
	LookupConcurrency  int           `koanf:"lookup_concurrency" validate:"gte=1"`
	BreakerFailures    uint32        `koanf:"breaker_failures" validate:"gte=1"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
	RequestTimeout     time.Duration `koanf:"request_timeout" validate:"gt=0"`
}

type ScheduleConfig struct {
	DataDir string `koanf:"data_dir" validate:"required"`
}

type CacheConfig struct {
	Driver string `koanf:"driver" validate:"oneof=memory sqlite badger"`
	Path   string `koanf:"path" validate:"required_unless=Driver memory"`
}

type WorkerConfig struct {
	Workers   int      `koanf:"workers" validate:"gte=1"`
	QueueSize int      `koanf:"queue_size" validate:"gte=1"`
	Warm      []string `koanf:"warm"` // festival/day pairs built at startup
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              ":8080",
			CORSOrigins:       []string{"http://localhost:3000"},
			ReadHeaderTimeout: 15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
		},
		Spotify: SpotifyConfig{
			BaseURL:            "https://api.spotify.com/v1",
			TokenURL:           "https://accounts.spotify.com/api/token",
			Market:             "US",
			TracksPerArtist:    2,
			PlaylistTrackLimit: 5,
			MaxRetries:         3,
			RetryBackoff:       500 * time.Millisecond,
			RequestsPerSecond:  10,
			LookupConcurrency:  4,
			BreakerFailures:    5,
			BreakerTimeout:     30 * time.Second,
			RequestTimeout:     15 * time.Second,
		},
		Schedule: ScheduleConfig{
			DataDir: "data",
		},
		Cache: CacheConfig{
			Driver: "sqlite",
			Path:   "lineup.db",
		},
		Worker: WorkerConfig{
			Workers:   2,
			QueueSize: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration and validates it.
func Load() (*Config, error) {
	return load(findConfigFile())
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	if err := splitSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: invalid configuration: %w", err)
	}
	return nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// sectionKeys maps the first word of an env var to its config section, so
// that LINEUP_SPOTIFY_CLIENT_ID becomes spotify.client_id.
var sectionKeys = []string{"server", "spotify", "schedule", "cache", "worker", "logging"}

func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	for _, section := range sectionKeys {
		if rest, ok := strings.CutPrefix(key, section+"_"); ok {
			return section + "." + rest
		}
	}
	return key
}

var sliceFields = []string{
	"server.cors_origins",
	"worker.warm",
}

// splitSliceFields turns comma-separated env values into slices.
func splitSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceFields {
		raw, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := []string{}
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if err := k.Set(path, parts); err != nil {
			return fmt.Errorf("config: set %s: %w", path, err)
		}
	}
	return nil
}

// WarmTargets parses Worker.Warm entries of the form "festival/day".
func (c *Config) WarmTargets() [][2]string {
	targets := make([][2]string, 0, len(c.Worker.Warm))
	for _, w := range c.Worker.Warm {
		festival, day, ok := strings.Cut(w, "/")
		if !ok || festival == "" || day == "" {
			continue
		}
		targets = append(targets, [2]string{festival, day})
	}
	return targets
}
