package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvHome     = "IOTCONSOLE_HOME"
	EnvAPIURL   = "IOTCONSOLE_API_URL"
	EnvToken    = "IOTCONSOLE_TOKEN"
	EnvTimeout  = "IOTCONSOLE_TIMEOUT"
	EnvLang     = "IOTCONSOLE_LANG"
	EnvPageSize = "IOTCONSOLE_PAGE_SIZE"
	EnvLogLevel = "IOTCONSOLE_LOG_LEVEL"
	EnvLogFile  = "IOTCONSOLE_LOG_FILE"
)

// LoadDotEnv loads .env from the working directory and from the config
// directory. Variables already present in the process environment win.
// Missing files are not an error.
func LoadDotEnv() error {
	candidates := []string{".env"}
	if dir, err := GetConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, ".env"))
	}

	var errs []error
	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			errs = append(errs, fmt.Errorf("loading %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}

// ApplyEnv overrides cfg with IOTCONSOLE_* variables found through lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		cfg.API.BaseURL = v
	}
	if v, ok := lookup(EnvToken); ok && v != "" {
		cfg.API.Token = v
	}
	if v, ok := lookup(EnvLang); ok && v != "" {
		cfg.Language = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		cfg.Logging.File = v
	}

	var errs []error
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvTimeout, err))
		} else {
			cfg.API.TimeoutSeconds = n
		}
	}
	if v, ok := lookup(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvPageSize, err))
		} else {
			cfg.Table.PageSize = n
		}
	}
	return errors.Join(errs...)
}
