package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/openlibrary"
	"github.com/rshade/libris/internal/session"
)

// Output formats for non-interactive commands.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Defaults.
const (
	DefaultLanguage = "en"
	DefaultPages    = 1
	MaxPages        = 50
	configFileName  = "config.yaml"
)

// Validation errors.
var (
	ErrInvalidFormat  = errors.New("invalid output format")
	ErrInvalidTimeout = errors.New("api timeout must be positive")
	ErrInvalidRate    = errors.New("requests_per_second must be >= 0")
	ErrInvalidPages   = fmt.Errorf("pages must be between 1 and %d", MaxPages)
	ErrInvalidBaseURL = errors.New("api base_url cannot be empty")
)

// Config is the full libris configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the Open Library client.
type APIConfig struct {
	BaseURL           string        `yaml:"base_url"`
	CoversURL         string        `yaml:"covers_url"`
	Timeout           time.Duration `yaml:"timeout"`
	UserAgent         string        `yaml:"user_agent,omitempty"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
}

// OutputConfig configures result presentation.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	DefaultSort   string `yaml:"default_sort"`
	// Language is the BCP 47 tag used to collate titles.
	Language string `yaml:"language"`
	// Pages is how many pages `libris search` fetches by default.
	Pages int `yaml:"pages"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           openlibrary.DefaultBaseURL,
			CoversURL:         catalog.DefaultCoversURL,
			Timeout:           openlibrary.DefaultTimeout,
			RequestsPerSecond: 1,
		},
		Output: OutputConfig{
			DefaultFormat: FormatTable,
			DefaultSort:   session.SortRelevance.String(),
			Language:      DefaultLanguage,
			Pages:         DefaultPages,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// New returns the defaults overlaid with the config file and environment.
// A missing config file is not an error.
func New() (*Config, error) {
	cfg := Default()

	path, err := ConfigFilePath()
	if err != nil {
		return nil, err
	}
	if err = cfg.LoadFile(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

// LoadFile unmarshals the YAML file at path over the current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for values the client cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, ErrInvalidBaseURL)
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %s", ErrInvalidTimeout, c.API.Timeout))
	}
	if c.API.RequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("%w: got %g", ErrInvalidRate, c.API.RequestsPerSecond))
	}
	if !IsValidFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: %q (valid: table, json, yaml)", ErrInvalidFormat, c.Output.DefaultFormat))
	}
	if _, err := session.ParseSortMode(c.Output.DefaultSort); err != nil {
		errs = append(errs, err)
	}
	if _, err := session.NewProjectorForLanguage(c.Output.Language); err != nil {
		errs = append(errs, err)
	}
	if c.Output.Pages < 1 || c.Output.Pages > MaxPages {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidPages, c.Output.Pages))
	}

	return errors.Join(errs...)
}

// SortMode returns the parsed default sort mode, falling back to relevance.
func (c *Config) SortMode() session.SortMode {
	mode, err := session.ParseSortMode(c.Output.DefaultSort)
	if err != nil {
		return session.SortRelevance
	}
	return mode
}

// IsValidFormat reports whether format is a supported output format.
func IsValidFormat(format string) bool {
	return slices.Contains([]string{FormatTable, FormatJSON, FormatYAML}, format)
}

// ClientConfig converts the API section into an openlibrary.Config.
func (c *Config) ClientConfig(userAgent string) openlibrary.Config {
	ua := c.API.UserAgent
	if ua == "" {
		ua = userAgent
	}
	return openlibrary.Config{
		BaseURL:           c.API.BaseURL,
		UserAgent:         ua,
		Timeout:           c.API.Timeout,
		RequestsPerSecond: c.API.RequestsPerSecond,
	}
}
