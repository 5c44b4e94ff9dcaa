package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")             // Current directory
		v.AddConfigPath("./configs")     // Project configs directory
		v.AddConfigPath("/etc/seasonal") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("SEASONAL")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 5555)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")

	// Forecast defaults
	v.SetDefault("forecast.max_series_length", 100000)
	v.SetDefault("forecast.max_horizon", 1000)
	v.SetDefault("forecast.optimizer.grid_resolution", 9)
	v.SetDefault("forecast.optimizer.max_evaluations", 2000)
	v.SetDefault("forecast.optimizer.workers", 0)
	v.SetDefault("forecast.optimizer.in_sample_weight", 2)
	v.SetDefault("forecast.optimizer.holdout_weight", 3)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 5555,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
		Forecast: ForecastConfig{
			MaxSeriesLength: 100000,
			MaxHorizon:      1000,
			Optimizer: OptimizerConfig{
				GridResolution: 9,
				MaxEvaluations: 2000,
				InSampleWeight: 2,
				HoldoutWeight:  3,
			},
		},
	}
}
