// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config is the top-level engine configuration.
type Config struct {
	App     AppConfig     `koanf:"app"`
	Engine  EngineConfig  `koanf:"engine"`
	Log     LogConfig     `koanf:"log"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// AppConfig carries general application identity.
type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // development, staging, production
	Debug       bool   `koanf:"debug"`
}

// EngineConfig tunes the SSSP/BMSSP engine itself.
type EngineConfig struct {
	// BlockSizeMin and BlockSizeMax bound the block size B derived from
	// log2(n) at query time.
	BlockSizeMin int `koanf:"block_size_min"`
	BlockSizeMax int `koanf:"block_size_max"`

	// HeapVariant selects the BlockHeap implementation: "lazy" (default)
	// or "ordered".
	HeapVariant string `koanf:"heap_variant"`

	// StaleRebuildThreshold is the fraction of stale entries in the lazy
	// heap's backing array that triggers a rebuild.
	StaleRebuildThreshold float64 `koanf:"stale_rebuild_threshold"`

	// DefaultPrecision selects the numeric precision used when a caller
	// does not specify one: "float32" or "float64".
	DefaultPrecision string `koanf:"default_precision"`

	// ParallelRelaxation enables the lock-guarded parallel relaxation phase.
	ParallelRelaxation bool `koanf:"parallel_relaxation"`

	// RelaxationWorkers caps the goroutine pool used during parallel
	// relaxation. Zero means runtime.NumCPU().
	RelaxationWorkers int `koanf:"relaxation_workers"`

	// StatePoolSize bounds how many ReusableState buffer bundles are kept
	// warm in the pool.
	StatePoolSize int `koanf:"state_pool_size"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error
	Format     string `koanf:"format"`      // json, text
	Output     string `koanf:"output"`      // stdout, stderr, file
	FilePath   string `koanf:"file_path"`   // path to log file when output is "file"
	MaxSize    int    `koanf:"max_size"`    // MB
	MaxBackups int    `koanf:"max_backups"` // number of rotated backups to keep
	MaxAge     int    `koanf:"max_age"`     // days
	Compress   bool   `koanf:"compress"`
}

// MetricsConfig configures the Prometheus registry exposed around Query.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
	Subsystem string `koanf:"subsystem"`
}

// Validate checks the configuration for internal consistency.
func (c *Config) Validate() error {
	var errs []string

	if c.App.Name == "" {
		errs = append(errs, "app.name is required")
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.Engine.BlockSizeMin <= 0 {
		errs = append(errs, "engine.block_size_min must be positive")
	}
	if c.Engine.BlockSizeMax < c.Engine.BlockSizeMin {
		errs = append(errs, "engine.block_size_max must be >= engine.block_size_min")
	}

	validHeaps := map[string]bool{"lazy": true, "ordered": true}
	if !validHeaps[c.Engine.HeapVariant] {
		errs = append(errs, fmt.Sprintf("engine.heap_variant must be one of: lazy, ordered, got %s", c.Engine.HeapVariant))
	}

	if c.Engine.StaleRebuildThreshold <= 0 || c.Engine.StaleRebuildThreshold > 1 {
		errs = append(errs, "engine.stale_rebuild_threshold must be in (0, 1]")
	}

	validPrecisions := map[string]bool{"float32": true, "float64": true}
	if !validPrecisions[c.Engine.DefaultPrecision] {
		errs = append(errs, fmt.Sprintf("engine.default_precision must be one of: float32, float64, got %s", c.Engine.DefaultPrecision))
	}

	if c.Engine.RelaxationWorkers < 0 {
		errs = append(errs, "engine.relaxation_workers must be non-negative")
	}

	if c.Engine.StatePoolSize < 0 {
		errs = append(errs, "engine.state_pool_size must be non-negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// IsDevelopment reports whether the configured environment is development.
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "dev"
}

// IsProduction reports whether the configured environment is production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production" || c.App.Environment == "prod"
}

// RebuildThreshold returns the configured stale-entry rebuild threshold,
// falling back to a conservative default when unset.
func (c *Config) RebuildThreshold() float64 {
	if c.Engine.StaleRebuildThreshold <= 0 {
		return 0.5
	}
	return c.Engine.StaleRebuildThreshold
}

// WorkerCount returns the effective relaxation worker count, treating zero
// as "use runtime.NumCPU()" — the caller resolves that default, keeping
// this package free of a runtime import for a single knob.
func (e EngineConfig) WorkerCount(numCPU int) int {
	if e.RelaxationWorkers > 0 {
		return e.RelaxationWorkers
	}
	return numCPU
}
