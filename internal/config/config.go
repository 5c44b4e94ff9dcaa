package config

import "fmt"

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Forecast ForecastConfig `mapstructure:"forecast"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// ForecastConfig bounds per-request work and seeds the parameter search.
type ForecastConfig struct {
	MaxSeriesLength int             `mapstructure:"max_series_length"` // Reject series longer than this
	MaxHorizon      int             `mapstructure:"max_horizon"`       // Reject horizons longer than this
	Optimizer       OptimizerConfig `mapstructure:"optimizer"`
}

// OptimizerConfig holds the server-wide defaults for the two-stage
// parameter search. Zero workers means one per CPU.
type OptimizerConfig struct {
	GridResolution int     `mapstructure:"grid_resolution"`  // Lattice points per axis
	MaxEvaluations int     `mapstructure:"max_evaluations"`  // Refinement budget
	Workers        int     `mapstructure:"workers"`          // Parallel grid workers
	InSampleWeight float64 `mapstructure:"in_sample_weight"` // Weight of the in-sample MSE term
	HoldoutWeight  float64 `mapstructure:"holdout_weight"`   // Weight of the out-of-sample MSE term
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := c.Forecast.Validate(); err != nil {
		return fmt.Errorf("forecast config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid level: %s", c.Level)
	}

	switch c.Format {
	case "", "json", "console", "pretty":
	default:
		return fmt.Errorf("invalid format: %s", c.Format)
	}

	return nil
}

// Validate validates forecast configuration
func (c *ForecastConfig) Validate() error {
	if c.MaxSeriesLength < 1 {
		return fmt.Errorf("max_series_length must be positive: %d", c.MaxSeriesLength)
	}

	if c.MaxHorizon < 1 {
		return fmt.Errorf("max_horizon must be positive: %d", c.MaxHorizon)
	}

	if c.Optimizer.GridResolution < 2 {
		return fmt.Errorf("optimizer.grid_resolution must be at least 2: %d", c.Optimizer.GridResolution)
	}

	if c.Optimizer.MaxEvaluations < 1 {
		return fmt.Errorf("optimizer.max_evaluations must be positive: %d", c.Optimizer.MaxEvaluations)
	}

	if c.Optimizer.Workers < 0 {
		return fmt.Errorf("optimizer.workers cannot be negative: %d", c.Optimizer.Workers)
	}

	if c.Optimizer.InSampleWeight < 0 || c.Optimizer.HoldoutWeight < 0 {
		return fmt.Errorf("optimizer objective weights cannot be negative: %g, %g",
			c.Optimizer.InSampleWeight, c.Optimizer.HoldoutWeight)
	}

	return nil
}
