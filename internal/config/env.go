package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvHome         = "LIBRIS_HOME"
	EnvAPIURL       = "LIBRIS_API_URL"
	EnvTimeout      = "LIBRIS_API_TIMEOUT"
	EnvRate         = "LIBRIS_REQUESTS_PER_SECOND"
	EnvOutputFormat = "LIBRIS_OUTPUT_FORMAT"
	EnvSort         = "LIBRIS_SORT"
	EnvLanguage     = "LIBRIS_LANGUAGE"
	EnvLogLevel     = "LIBRIS_LOG_LEVEL"
	EnvLogFormat    = "LIBRIS_LOG_FORMAT"
	EnvLogFile      = "LIBRIS_LOG_FILE"
)

// ApplyEnv overrides fields from environment variables. Unparseable numeric
// values are ignored so a typo in the environment never breaks startup;
// Validate still catches out-of-range values.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.BaseURL = v
	}
	if v, ok := lookup(EnvTimeout); ok {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v, ok := lookup(EnvRate); ok {
		if rps, err := strconv.ParseFloat(v, 64); err == nil {
			c.API.RequestsPerSecond = rps
		}
	}
	if v, ok := lookup(EnvOutputFormat); ok && v != "" {
		c.Output.DefaultFormat = v
	}
	if v, ok := lookup(EnvSort); ok && v != "" {
		c.Output.DefaultSort = v
	}
	if v, ok := lookup(EnvLanguage); ok && v != "" {
		c.Output.Language = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookup(EnvLogFile); ok {
		c.Logging.File = v
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is fine.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}
