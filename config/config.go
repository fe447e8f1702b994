package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Tracking  TrackingConfig  `yaml:"tracking"`
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	MinIO     MinIOConfig     `yaml:"minio"`
	NATS      NATSConfig      `yaml:"nats"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type TrackingConfig struct {
	TrajectoryCapacity int    `yaml:"trajectory_capacity"`
	ConfirmThreshold   uint64 `yaml:"confirm_threshold"`
	// SmoothingTimeStep is the Kalman filter time step for trajectory
	// smoothing; 0 disables smoothing.
	SmoothingTimeStep float64 `yaml:"smoothing_time_step"`
}

type SnapshotsConfig struct {
	// Backend selects the snapshot sink: "disk" or "minio".
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	Quality int    `yaml:"quality"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type NATSConfig struct {
	// URL is the NATS server address; empty disables publishing.
	URL string `yaml:"url"`
}

type MetricsConfig struct {
	// Addr is the listen address for the /metrics endpoint; empty disables it.
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads config from a YAML file and applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	cfg := &Config{}
	applyEnvOverrides(cfg)
	setDefaults(cfg)
	return cfg
}

// Validate checks the configuration once at load time; the values are
// immutable afterwards.
func (cfg *Config) Validate() error {
	if cfg.Tracking.TrajectoryCapacity <= 0 {
		return errors.Errorf("tracking: trajectory capacity must be positive, got %d", cfg.Tracking.TrajectoryCapacity)
	}
	if cfg.Tracking.ConfirmThreshold == 0 {
		return errors.New("tracking: confirm threshold must be positive")
	}
	if cfg.Tracking.SmoothingTimeStep < 0 {
		return errors.Errorf("tracking: smoothing time step must not be negative, got %v", cfg.Tracking.SmoothingTimeStep)
	}
	if cfg.Snapshots.Quality < 1 || cfg.Snapshots.Quality > 100 {
		return errors.Errorf("snapshots: quality must be in [1;100], got %d", cfg.Snapshots.Quality)
	}
	switch cfg.Snapshots.Backend {
	case "disk":
	case "minio":
		if cfg.MinIO.Endpoint == "" || cfg.MinIO.Bucket == "" {
			return errors.New("minio: endpoint and bucket are required for the minio snapshot backend")
		}
	default:
		return errors.Errorf("snapshots: unknown backend %q", cfg.Snapshots.Backend)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Tracking.TrajectoryCapacity == 0 {
		cfg.Tracking.TrajectoryCapacity = 90
	}
	if cfg.Tracking.ConfirmThreshold == 0 {
		cfg.Tracking.ConfirmThreshold = 10
	}
	if cfg.Snapshots.Backend == "" {
		cfg.Snapshots.Backend = "disk"
	}
	if cfg.Snapshots.Dir == "" {
		cfg.Snapshots.Dir = "snapshots"
	}
	if cfg.Snapshots.Quality == 0 {
		cfg.Snapshots.Quality = 85
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRACKAGG_TRAJECTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Tracking.TrajectoryCapacity = n
		}
	}
	if v := os.Getenv("TRACKAGG_CONFIRM_THRESHOLD"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Tracking.ConfirmThreshold = n
		}
	}
	if v := os.Getenv("TRACKAGG_SNAPSHOTS_DIR"); v != "" {
		cfg.Snapshots.Dir = v
	}
	if v := os.Getenv("TRACKAGG_NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("TRACKAGG_MINIO_ENDPOINT"); v != "" {
		cfg.MinIO.Endpoint = v
	}
	if v := os.Getenv("TRACKAGG_MINIO_ACCESS_KEY"); v != "" {
		cfg.MinIO.AccessKey = v
	}
	if v := os.Getenv("TRACKAGG_MINIO_SECRET_KEY"); v != "" {
		cfg.MinIO.SecretKey = v
	}
	if v := os.Getenv("TRACKAGG_MINIO_BUCKET"); v != "" {
		cfg.MinIO.Bucket = v
	}
	if v := os.Getenv("TRACKAGG_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("TRACKAGG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
