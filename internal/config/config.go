// Package config loads genmeta.yaml and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

const ConfigFileName = "genmeta.yaml"

// Environment variables that override file values.
const (
	EnvDatabaseURL = "GENMETA_DATABASE_URL"
	EnvFetchURL    = "GENMETA_FETCH_URL"
	EnvConcurrency = "GENMETA_CONCURRENCY"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// IDPlaceholder is substituted with the media id in fetch URL templates.
const IDPlaceholder = "{id}"

type ScanConfig struct {
	Extensions  []string `yaml:"extensions,omitempty"`
	Concurrency int      `yaml:"concurrency"`
	Sidecars    bool     `yaml:"sidecars"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type LogConfig struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

type FetchConfig struct {
	URL      string `yaml:"url,omitempty"`
	Timeout  string `yaml:"timeout,omitempty"`
	RetryMax int    `yaml:"retry_max"`
}

type StoreConfig struct {
	DatabaseURL string `yaml:"database_url,omitempty"`
	Table       string `yaml:"table"`
}

type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Output OutputConfig `yaml:"output"`
	Log    LogConfig    `yaml:"log"`
	Fetch  FetchConfig  `yaml:"fetch"`
	Store  StoreConfig  `yaml:"store"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Scan:   ScanConfig{Concurrency: genmeta.DefaultConcurrency, Sidecars: true},
		Output: OutputConfig{Format: FormatText},
		Log:    LogConfig{Format: FormatText},
		Fetch:  FetchConfig{RetryMax: genmeta.DefaultFetchRetryMax},
		Store:  StoreConfig{Table: genmeta.DefaultStoreTable},
	}
}

// Load reads genmeta.yaml from dir. Keys absent from the file keep their
// default values.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// LoadOrDefault is Load with a missing file treated as defaults.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.Is(err, ErrConfigNotFound) {
		return Default(), nil
	}
	return cfg, err
}

// ApplyEnv overrides file values with non-empty environment variables read
// through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvDatabaseURL); v != "" {
		c.Store.DatabaseURL = v
	}
	if v := getenv(EnvFetchURL); v != "" {
		c.Fetch.URL = v
	}
	if v := getenv(EnvConcurrency); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q is not an integer: %w", EnvConcurrency, v, genmeta.ErrInvalidConfig)
		}
		c.Scan.Concurrency = n
	}
	return nil
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}(\.[A-Za-z_][A-Za-z0-9_]{0,62})?$`)

// Validate checks value ranges and formats. Errors wrap genmeta.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Scan.Concurrency < 1 || c.Scan.Concurrency > genmeta.MaxConcurrency {
		return invalid("scan.concurrency must be between 1 and %d, got %d", genmeta.MaxConcurrency, c.Scan.Concurrency)
	}
	for _, ext := range c.Scan.Extensions {
		if NormalizeExtension(ext) == "." {
			return invalid("scan.extensions contains an empty extension")
		}
	}
	if !knownFormat(c.Output.Format) {
		return invalid("output.format must be %q or %q, got %q", FormatText, FormatJSON, c.Output.Format)
	}
	if !knownFormat(c.Log.Format) {
		return invalid("log.format must be %q or %q, got %q", FormatText, FormatJSON, c.Log.Format)
	}
	if c.Fetch.URL != "" && !strings.Contains(c.Fetch.URL, IDPlaceholder) {
		return invalid("fetch.url must contain %s", IDPlaceholder)
	}
	if _, err := c.Fetch.TimeoutDuration(); err != nil {
		return invalid("fetch.timeout: %v", err)
	}
	if c.Fetch.RetryMax < 0 {
		return invalid("fetch.retry_max must not be negative")
	}
	if !identifierPattern.MatchString(c.Store.Table) {
		return invalid("store.table %q is not a valid SQL identifier", c.Store.Table)
	}
	return nil
}

// TimeoutDuration parses Timeout, defaulting to genmeta.DefaultFetchTimeout.
func (f FetchConfig) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return genmeta.DefaultFetchTimeout, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", f.Timeout)
	}
	return d, nil
}

// ExtensionSet returns the lower-cased extensions to scan. An empty list
// selects every supported extension.
func (s ScanConfig) ExtensionSet() map[string]bool {
	set := make(map[string]bool)
	if len(s.Extensions) == 0 {
		for _, exts := range genmeta.SupportedExtensions {
			for _, ext := range exts {
				set[ext] = true
			}
		}
		return set
	}
	for _, ext := range s.Extensions {
		set[NormalizeExtension(ext)] = true
	}
	return set
}

// NormalizeExtension lower-cases ext and ensures a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

func knownFormat(f string) bool {
	return f == FormatText || f == FormatJSON
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), genmeta.ErrInvalidConfig)
}
