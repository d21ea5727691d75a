package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"vclock/internal/lanes"
	"vclock/internal/logging"
	"vclock/internal/monitoring"
	"vclock/internal/repair"
	"vclock/internal/storage"
)

// Environment variables read by Load.
const (
	EnvNodeID    = "VCLOCK_NODE_ID"
	EnvLogLevel  = "VCLOCK_LOG_LEVEL"
	EnvLogFormat = "VCLOCK_LOG_FORMAT"
	EnvLanes     = lanes.EnvOverride
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the node configuration.
type Config struct {
	NodeID    string
	LogLevel  string
	LogFormat string
	// Lanes forces a batch kernel ("generic" or "unrolled"). Empty keeps
	// the kernel detected at startup.
	Lanes string
}

// Default returns a config with the default log settings and no node ID.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "json",
	}
}

// Load reads the config through lookup, typically os.LookupEnv, on top of
// Default and validates it.
func Load(lookup func(string) (string, bool)) (Config, error) {
	c := Default()
	if v, ok := lookup(EnvNodeID); ok {
		c.NodeID = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		c.LogLevel = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLogFormat); ok && strings.TrimSpace(v) != "" {
		c.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvLanes); ok {
		c.Lanes = strings.TrimSpace(v)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks the config for missing or unknown values.
func (c Config) Validate() error {
	if c.NodeID == "" {
		return fmt.Errorf("%w: node ID cannot be empty", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown log format %q (expected json or console)", ErrInvalidConfig, c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Lanes != "" {
		if _, ok := lanes.ParseKernel(c.Lanes); !ok {
			return fmt.Errorf("%w: unknown lanes kernel %q (expected generic or unrolled)", ErrInvalidConfig, c.Lanes)
		}
	}
	return nil
}

// Components are the clock consumers wired from a Config.
type Components struct {
	Logger   *logging.Logger
	Metrics  *monitoring.Metrics
	Store    *storage.InMemoryStore
	Repairer *repair.ReadRepairer
}

// Build validates c, selects the lanes kernel and wires logger, metrics,
// store and read repairer. Metrics are registered on reg.
func (c Config) Build(reg prometheus.Registerer) (*Components, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if c.Lanes != "" {
		k, _ := lanes.ParseKernel(c.Lanes)
		if err := lanes.Use(k); err != nil {
			return nil, fmt.Errorf("failed to select lanes kernel: %w", err)
		}
	}
	logger.WithNodeID(c.NodeID).Info("starting",
		zap.String("lanes", lanes.ActiveKernel().String()),
		zap.Bool("lanes_from_env", lanes.IsOverridden()))

	metrics := monitoring.NewMetrics(reg)
	return &Components{
		Logger:  logger,
		Metrics: metrics,
		Store: storage.NewInMemoryStore(c.NodeID,
			storage.WithLogger(logger.Named("storage")),
			storage.WithMetrics(metrics)),
		Repairer: repair.NewReadRepairer(logger.Named("repair"), metrics),
	}, nil
}
