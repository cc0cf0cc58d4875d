// Package config loads, validates and persists iotconsole settings.
//
// Settings are resolved in this order, later sources winning:
//  1. built-in defaults
//  2. ~/.iotconsole/config.yaml (IOTCONSOLE_HOME overrides the directory)
//  3. an explicit --config overlay file
//  4. .env files and IOTCONSOLE_* environment variables
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultAPIURL         = "http://localhost:3000/api/v1"
	DefaultTimeoutSeconds = 30
	DefaultPageSize       = 10
	DefaultLanguage       = "da"
	DefaultOutputFormat   = "table"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "json"
	configFileName        = "config.yaml"
	outputTypeFile        = "file"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete iotconsole configuration.
type Config struct {
	API      APIConfig     `json:"api"      yaml:"api"`
	Table    TableConfig   `json:"table"    yaml:"table"`
	Output   OutputConfig  `json:"output"   yaml:"output"`
	Logging  LoggingConfig `json:"logging"  yaml:"logging"`
	Language string        `json:"language" yaml:"language" validate:"oneof=en da"`
}

// APIConfig points at the platform backend.
type APIConfig struct {
	BaseURL        string `json:"base_url"        yaml:"base_url"        validate:"required,url"`
	Token          string `json:"token,omitempty" yaml:"token,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds" validate:"gte=1,lte=600"`
}

// Timeout returns the request timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// TableConfig holds pagination defaults for list views.
type TableConfig struct {
	PageSize        int   `json:"page_size"         yaml:"page_size"         validate:"gt=0,lte=1000"`
	PageSizeOptions []int `json:"page_size_options" yaml:"page_size_options" validate:"dive,gt=0,lte=1000"`
}

// OutputConfig controls non-interactive output.
type OutputConfig struct {
	DefaultFormat string `json:"default_format" yaml:"default_format" validate:"oneof=table json yaml"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `json:"level"          yaml:"level"          validate:"oneof=trace debug info warn error"`
	Format string `json:"format"         yaml:"format"         validate:"oneof=json console"`
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
}

// Default returns a configuration populated with built-in defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        DefaultAPIURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Table: TableConfig{
			PageSize:        DefaultPageSize,
			PageSizeOptions: []int{5, 10, 20, 50},
		},
		Output:   OutputConfig{DefaultFormat: DefaultOutputFormat},
		Logging:  LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Language: DefaultLanguage,
	}
}

// New returns defaults merged with the user config file and the environment.
// Problems with the file are ignored so callers always get a usable config;
// use Load to see them.
func New() *Config {
	cfg, _ := Load("")
	return cfg
}

// Load builds a configuration from defaults, the user config file, the
// optional overlay file and the environment. The returned config is always
// usable; err reports problems with the files that were skipped.
func Load(overlayPath string) (*Config, error) {
	cfg := Default()
	var errs []error

	if path, err := FilePath(); err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if mergeErr := ShallowMergeYAML(cfg, path); mergeErr != nil {
				errs = append(errs, mergeErr)
			}
		}
	}

	if overlayPath != "" {
		if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
			errs = append(errs, err)
		}
	}

	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		errs = append(errs, err)
	}

	return cfg, errors.Join(errs...)
}

// FilePath returns the location of the user config file.
func FilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Validate checks every field against its constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
// The API token is never persisted.
func (c *Config) Save(path string) error {
	cp := *c
	cp.API.Token = ""

	data, err := yaml.Marshal(&cp)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
