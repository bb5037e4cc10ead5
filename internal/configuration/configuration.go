package configuration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"freight/internal/eligibility"

	"github.com/spf13/viper"
)

const (
	defaultTimeout      = 3 * time.Second
	defaultMaxBodyBytes = 1 << 20
	defaultLogMaxSize   = 100
	defaultLogBackups   = 20
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	// Logger: logger component configuration
	Logger LoggerConfig `mapstructure:"logger"`
	// Server: HTTP server configuration
	Server ServerConfig `mapstructure:"server"`
	// Catalog: carrier catalog source
	Catalog CatalogConfig `mapstructure:"catalog"`
	// Scoring: overrides of the default scoring configuration
	Scoring ScoringConfig `mapstructure:"scoring"`
}

// LoggerConfig defines logging settings.
type LoggerConfig struct {
	// Level: debug, info, warn, warning or error.
	// Value is case-insensitive but checked in lowercase.
	Level string `mapstructure:"level"`
	// File: rotating log file; console output when empty.
	File string `mapstructure:"file"`
	// MaxSize: log file size in MB before rotation (default 100).
	MaxSize int `mapstructure:"max_size"`
	// MaxBackups: number of rotated files to keep (default 20).
	MaxBackups int `mapstructure:"max_backups"`
}

// ServerConfig contains HTTP server parameters.
type ServerConfig struct {
	// Address: address and port where the server will listen (e.g., ":8080").
	Address string `mapstructure:"address"`
	// MaxBodyBytes: request body limit (default 1 MiB).
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
	// ReadTimeout and WriteTimeout default to 3s. Example: "3s", "500ms".
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CatalogConfig locates the carrier catalog.
type CatalogConfig struct {
	// File: path to the YAML carrier catalog.
	File string `mapstructure:"file"`
}

// OverallWeightsConfig blends primary and secondary signals.
type OverallWeightsConfig struct {
	Primary   float64 `mapstructure:"primary"`
	Secondary float64 `mapstructure:"secondary"`
}

// ScoringConfig overrides the default scoring configuration. Omitted fields keep their
// defaults; a weight map replaces the whole group.
type ScoringConfig struct {
	PrimaryWeights       map[string]float64    `mapstructure:"primary_weights"`
	SecondaryWeights     map[string]float64    `mapstructure:"secondary_weights"`
	OverallWeights       *OverallWeightsConfig `mapstructure:"overall_weights"`
	EligibilityThreshold *float64              `mapstructure:"eligibility_threshold"`
	ExplainabilityLevel  string                `mapstructure:"explainability_level"`
}

// Validate checks the correctness of the entire application configuration.
// Calls validation for each nested structure and returns the first detected error.
// Returns nil if the configuration is valid.
func (c *AppConfig) Validate() error {
	if err := c.Logger.Validate(); err != nil {
		return err
	}

	if err := c.Server.Validate(); err != nil {
		return err
	}

	if err := c.Catalog.Validate(); err != nil {
		return err
	}

	if err := c.Scoring.Validate(); err != nil {
		return err
	}

	return nil
}

// Validate checks the correctness of the logger configuration.
// Verifies that the log level is set and is one of the supported values.
// Supported values: debug, info, warn, warning, error (case-insensitive).
func (l *LoggerConfig) Validate() error {
	if l.Level == "" {
		return errors.New("logger.level: must be specified")
	}

	valid := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !valid[strings.ToLower(l.Level)] {
		return fmt.Errorf("logger.level: unsupported level '%s'", l.Level)
	}

	if l.MaxSize == 0 {
		l.MaxSize = defaultLogMaxSize
	}

	if l.MaxBackups == 0 {
		l.MaxBackups = defaultLogBackups
	}

	return nil
}

// Validate checks the correctness of the server configuration and fills in defaults.
func (n *ServerConfig) Validate() error {
	if n.Address == "" {
		return errors.New("server.address: must be specified")
	}

	if n.MaxBodyBytes < 0 {
		return errors.New("server.max_body_bytes: must not be negative")
	}

	if n.MaxBodyBytes == 0 {
		n.MaxBodyBytes = defaultMaxBodyBytes
	}

	if n.ReadTimeout == 0 {
		n.ReadTimeout = defaultTimeout
	}

	if n.WriteTimeout == 0 {
		n.WriteTimeout = defaultTimeout
	}

	return nil
}

// Validate checks that the catalog file is set.
func (c *CatalogConfig) Validate() error {
	if c.File == "" {
		return errors.New("catalog.file: must be specified")
	}

	return nil
}

// Validate merges the overrides over the default scoring configuration and checks the result.
func (s *ScoringConfig) Validate() error {
	if err := eligibility.DefaultConfiguration().Merge(s.Overrides()).Validate(); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	return nil
}

// Overrides converts the section into eligibility overrides.
func (s *ScoringConfig) Overrides() eligibility.Overrides {
	o := eligibility.Overrides{
		PrimaryWeights:       s.PrimaryWeights,
		SecondaryWeights:     s.SecondaryWeights,
		EligibilityThreshold: s.EligibilityThreshold,
	}

	if s.OverallWeights != nil {
		o.OverallWeights = &eligibility.OverallWeights{
			Primary:   s.OverallWeights.Primary,
			Secondary: s.OverallWeights.Secondary,
		}
	}

	if s.ExplainabilityLevel != "" {
		level := eligibility.ExplainabilityLevel(s.ExplainabilityLevel)
		o.ExplainabilityLevel = &level
	}

	return o
}

// LoadConfig loads configuration from the specified file using Viper.
// Supports YAML format. Also includes environment variable loading (AutomaticEnv),
// which can override values from the file.
//
// Returns a pointer to AppConfig or an error if:
// - the file is not found or inaccessible
// - the configuration has invalid format
// - one of the sections fails validation
func LoadConfig(configPath string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}
