package model

import "time"

// Config holds all runtime configuration
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Pipeline    PipelineConfig    `yaml:"pipeline" mapstructure:"pipeline"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// Store driver names accepted by StoreConfig.Driver.
const (
	DriverMemory = "memory"
	DriverDisk   = "disk"
	DriverSQLite = "sqlite"
)

// StoreConfig selects and configures the project store driver
type StoreConfig struct {
	// Driver is one of: memory, disk, sqlite
	Driver string `yaml:"driver" mapstructure:"driver"`
	// Path is the data directory (disk) or database file (sqlite)
	Path string `yaml:"path" mapstructure:"path"`
}

// PipelineConfig tunes pipeline behavior
type PipelineConfig struct {
	// StepDelay is a cosmetic pause inserted between steps. Purely
	// presentational; the pipeline contract is synchronous either way.
	StepDelay time.Duration `yaml:"step_delay" mapstructure:"step_delay"`
	// OutputDir is where run and batch write generated documents
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`
}

// ConcurrencyConfig tunes batch processing
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	ProjectsPerSecond float64 `yaml:"projects_per_second" mapstructure:"projects_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// OutputConfig tunes rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: DriverMemory,
			Path:   "",
		},
		Pipeline: PipelineConfig{
			StepDelay: 0,
			OutputDir: ".",
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			ProjectsPerSecond: 8,
			Burst:             4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}
