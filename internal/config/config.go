package config

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables consulted by ApplyEnv. The URL and token are
// required; the process refuses to start without them.
const (
	EnvURL     = "MCP_BRIDGE_URL"
	EnvToken   = "MCP_BRIDGE_TOKEN"
	EnvTimeout = "MCP_BRIDGE_TIMEOUT_MS"
)

// DefaultTimeoutMS bounds each upstream call unless configured otherwise.
const DefaultTimeoutMS = 60000

// Config holds the bridge configuration: where to reach the remote
// endpoint, how to authenticate, and how long to wait for it.
type Config struct {
	// URL is the remote endpoint every inbound message is posted to
	URL string `yaml:"url"`

	// Token is the bearer credential; may be a 1Password secret
	// reference (op://vault/item/field) resolved at startup
	Token string `yaml:"token"`

	// TimeoutMS is the upstream call timeout in milliseconds
	TimeoutMS int `yaml:"timeout_ms"`
}

// Default returns a configuration with the default timeout and nothing
// else; URL and token must come from a file or the environment.
func Default() *Config {
	return &Config{
		TimeoutMS: DefaultTimeoutMS,
	}
}

// LoadFile loads configuration from a YAML file. An empty path or a
// missing file yields the defaults.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("error opening config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load loads configuration from an io.Reader
func Load(r io.Reader) (*Config, error) {
	config := Default()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config YAML: %w", err)
	}

	return config, nil
}

// ApplyEnv overlays environment variables onto the configuration.
// Environment values take precedence over file values.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvURL); v != "" {
		c.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		c.Token = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvTimeout, v, err)
		}
		c.TimeoutMS = ms
	}
	return nil
}

// Validate checks that the configuration is complete enough to start
func (c *Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("remote URL is required (set %s)", EnvURL)
	}
	u, err := url.Parse(c.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid remote URL %q", c.URL)
	}
	if c.Token == "" {
		return fmt.Errorf("bearer token is required (set %s)", EnvToken)
	}
	if c.TimeoutMS <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.TimeoutMS)
	}
	return nil
}

// Timeout returns the upstream call timeout as a duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
