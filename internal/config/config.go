// Package config loads eua settings from YAML or TOML files.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/dm/eua-go/internal/apm"
)

// Output formats accepted by the status command.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config is the full set of eua settings. Durations are kept as strings in
// files ("10s") and parsed by Validate.
type Config struct {
	URI              string   `yaml:"uri" toml:"uri"`
	Insecure         bool     `yaml:"insecure" toml:"insecure"`
	Cloud            bool     `yaml:"cloud" toml:"cloud"`
	ApmIndexPatterns []string `yaml:"apm_index_patterns" toml:"apm_index_patterns"`
	Timeout          string   `yaml:"request_timeout" toml:"request_timeout"`
	Interval         string   `yaml:"interval" toml:"interval"`
	LogLevel         string   `yaml:"log_level" toml:"log_level"`
	Output           string   `yaml:"output" toml:"output"`

	requestTimeout time.Duration
	pollInterval   time.Duration
}

// Default returns the settings used when no file or flag overrides them.
func Default() *Config {
	return &Config{
		ApmIndexPatterns: append([]string(nil), apm.DefaultIndexPatterns...),
		Timeout:          "10s",
		Interval:         "30s",
		LogLevel:         "info",
		Output:           OutputText,
	}
}

// Load reads path on top of Default. The decoder is picked from the file
// extension: .yaml/.yml or .toml.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (want .yaml, .yml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the settings and parses the duration fields.
func (c *Config) Validate() error {
	var err error
	if c.requestTimeout, err = parsePositive("request_timeout", c.Timeout); err != nil {
		return err
	}
	if c.pollInterval, err = parsePositive("interval", c.Interval); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	switch c.Output {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("invalid output %q (want %s or %s)", c.Output, OutputText, OutputJSON)
	}
	for _, p := range c.ApmIndexPatterns {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("apm_index_patterns must not contain empty patterns")
		}
	}
	return nil
}

// RequestTimeout returns the parsed request timeout. Validate must be called first.
func (c *Config) RequestTimeout() time.Duration { return c.requestTimeout }

// PollInterval returns the parsed poll interval. Validate must be called first.
func (c *Config) PollInterval() time.Duration { return c.pollInterval }

func parsePositive(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}

// ParseESURI parses an Elasticsearch URI and returns the base URL (without credentials),
// username, and password. Returns an error if the URI is invalid or has an unsupported scheme.
func ParseESURI(esURI string) (baseURL, username, password string, err error) {
	u, err := url.Parse(esURI)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid URI %q: %w", esURI, err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}

	if u.Hostname() == "" {
		return "", "", "", fmt.Errorf("invalid URI %q: host is required", esURI)
	}

	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		// Remove credentials from URL stored in config
		u.User = nil
	}

	return u.String(), username, password, nil
}
