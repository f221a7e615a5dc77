package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/dotcommander/gradegate/internal/grade"
)

// DefaultThreshold is the complexity ceiling applied when neither flags,
// environment nor an rc file say otherwise.
const DefaultThreshold = 5

// Config represents the gradegate configuration.
type Config struct {
	Root      string         `mapstructure:"root"`
	Threshold int            `mapstructure:"threshold"`
	Exclude   []string       `mapstructure:"exclude"`
	Format    string         `mapstructure:"format"`
	Output    string         `mapstructure:"output"`
	Quiet     bool           `mapstructure:"quiet"`
	Verbose   bool           `mapstructure:"verbose"`
	Scheme    string         `mapstructure:"scheme"`   // path to a grading scheme file, empty for the built-in scheme
	Strategy  string         `mapstructure:"strategy"` // evaluation strategy
	Baseline  BaselineConfig `mapstructure:"baseline"`
}

// BaselineConfig controls how accepted violations are read and written.
type BaselineConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoadConfig loads configuration in precedence order: defaults, then the
// first readable rc file, then GRADEGATE_* environment variables, then
// whatever flags cmd has bound into viper. rootPath, when non-empty,
// overrides everything.
func LoadConfig(rootPath string) (*Config, error) {
	viper.SetDefault("root", "")
	viper.SetDefault("threshold", DefaultThreshold)
	viper.SetDefault("format", "console")
	viper.SetDefault("quiet", false)
	viper.SetDefault("verbose", false)
	viper.SetDefault("strategy", string(grade.StrategyDecomposed))
	viper.SetDefault("baseline.enabled", false)
	viper.SetDefault("baseline.path", ".gradegatebaseline.json")

	configPaths := []string{".gradegaterc.json", ".gradegaterc.yaml", ".gradegaterc.yml"}
	for _, path := range configPaths {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err == nil {
			break
		}
	}

	viper.SetEnvPrefix("GRADEGATE")
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if rootPath != "" {
		config.Root = rootPath
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates the configuration.
func validateConfig(config *Config) error {
	if config.Format != "console" && config.Format != "json" && config.Format != "markdown" {
		return fmt.Errorf("invalid format: %s. Must be 'console', 'json', or 'markdown'", config.Format)
	}

	if config.Threshold < 1 {
		return fmt.Errorf("threshold must be at least 1, got %d", config.Threshold)
	}

	if _, err := grade.ParseStrategy(config.Strategy); err != nil {
		return err
	}

	if config.Baseline.Path == "" {
		return fmt.Errorf("baseline path must not be empty")
	}

	return nil
}
