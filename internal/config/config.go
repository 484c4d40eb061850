// Package config loads the configuration of the devexp command.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	client "github.com/devexp/devexp-go-client"
)

// Config is the file format read by the devexp command. String values may
// reference environment variables as ${NAME}.
type Config struct {
	BaseURL  string        `yaml:"base_url"`
	APIKey   string        `yaml:"api_key"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`

	Retries struct {
		Enabled     *bool         `yaml:"enabled"`
		MaxAttempts int           `yaml:"max_attempts"`
		Delay       time.Duration `yaml:"delay"`
	} `yaml:"retries"`

	Bulk struct {
		Enabled        bool `yaml:"enabled"`
		MaxParallelism int  `yaml:"max_parallelism"`
	} `yaml:"bulk"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from a YAML file. A missing file is not an error
// when path is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		return FromEnv(Default()), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML configuration, expanding environment variables first.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	return FromEnv(&cfg), nil
}

// FromEnv fills unset connection settings from DEVEXP_BASE_URL and
// DEVEXP_API_KEY.
func FromEnv(cfg *Config) *Config {
	if v := os.Getenv("DEVEXP_BASE_URL"); v != "" && cfg.BaseURL == "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("DEVEXP_API_KEY"); v != "" && cfg.APIKey == "" {
		cfg.APIKey = v
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:3000"
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.PageSize == 0 {
		c.PageSize = 20
	}
	if c.Retries.MaxAttempts == 0 {
		c.Retries.MaxAttempts = 3
	}
	if c.Retries.Delay == 0 {
		c.Retries.Delay = 2 * time.Second
	}
	if c.Bulk.MaxParallelism == 0 {
		c.Bulk.MaxParallelism = 4
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate reports settings the client can not work without.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("api_key is required (set it in the config file or DEVEXP_API_KEY)")
	}
	return nil
}

// ClientOptions translates the configuration into client options.
func (c *Config) ClientOptions() []client.Option {
	opts := []client.Option{
		client.WithAPIKey(c.APIKey),
		client.WithTimeout(c.Timeout),
		client.WithPageSize(c.PageSize),
	}

	if c.Retries.Enabled != nil && !*c.Retries.Enabled {
		opts = append(opts, client.WithoutRetries())
	} else {
		opts = append(opts, client.WithRetries(c.Retries.MaxAttempts, c.Retries.Delay))
	}

	if c.Bulk.Enabled {
		opts = append(opts, client.WithBulkOperations(c.Bulk.MaxParallelism))
	}

	if c.RateLimit.RequestsPerSecond > 0 {
		opts = append(opts, client.WithRateLimit(c.RateLimit.RequestsPerSecond, max(c.RateLimit.Burst, 1)))
	}

	return opts
}
