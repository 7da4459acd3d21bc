// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied by MergeWithDefaults when a field is unset
const (
	DefaultMaxHeaderLength = 40
	DefaultPhoneRegion     = "US"
	DefaultPort            = 8080
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultConcurrency     = 4
)

// Config represents the configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Extraction
	MaxHeaderLength int    `json:"max_header_length,omitempty" yaml:"max_header_length,omitempty" validate:"gte=0,lte=200"` // Longest line treated as a section header
	PhoneRegion     string `json:"phone_region,omitempty" yaml:"phone_region,omitempty" validate:"omitempty,len=2,alpha"`   // Region for national phone numbers

	// Storage and serving
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`                 // PostgreSQL connection URL
	Port        int    `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`     // HTTP listen port
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty" validate:"gte=0"` // Files parsed in parallel by the CLI

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
	Verbose   bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml
// are read as YAML; everything else is read as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("config error: '%s' failed the '%s' rule", jsonName(fe.StructField()), fe.Tag())
	}
	return fmt.Errorf("config error: %w", err)
}

// jsonName maps a Config field name to its file key
func jsonName(field string) string {
	switch field {
	case "MaxHeaderLength":
		return "max_header_length"
	case "PhoneRegion":
		return "phone_region"
	case "DatabaseURL":
		return "database_url"
	case "LogLevel":
		return "log_level"
	case "LogFormat":
		return "log_format"
	default:
		return strings.ToLower(field)
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults,
// falling back to the package defaults for anything still unset.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.PhoneRegion == "" {
		result.PhoneRegion = firstNonEmpty(defaults.PhoneRegion, DefaultPhoneRegion)
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = firstNonEmpty(defaults.LogLevel, DefaultLogLevel)
	}
	if result.LogFormat == "" {
		result.LogFormat = firstNonEmpty(defaults.LogFormat, DefaultLogFormat)
	}

	// Int fields: use default if zero
	if result.MaxHeaderLength == 0 {
		result.MaxHeaderLength = firstPositive(defaults.MaxHeaderLength, DefaultMaxHeaderLength)
	}
	if result.Port == 0 {
		result.Port = firstPositive(defaults.Port, DefaultPort)
	}
	if result.Concurrency == 0 {
		result.Concurrency = firstPositive(defaults.Concurrency, DefaultConcurrency)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv overrides file values with DATABASE_URL, PORT and LOG_LEVEL when set
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT %q is not a number", v)
		}
		c.Port = port
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
