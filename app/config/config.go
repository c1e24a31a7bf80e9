package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "postfeed.yaml"

// Config holds all postfeed configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Report  ReportConfig  `yaml:"report"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the client of the posts API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	ConnectTimeout string `yaml:"connect_timeout"`
	RequestTimeout string `yaml:"request_timeout"`
}

// ReportConfig configures a report run.
type ReportConfig struct {
	Timeout        string `yaml:"timeout"`
	MaxConcurrency int    `yaml:"max_concurrency"` // 0 = one task per post
}

// ServerConfig configures the local posts API.
type ServerConfig struct {
	Addr   string `yaml:"addr"`
	DBPath string `yaml:"db_path"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	LogBodies bool   `yaml:"log_bodies"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://127.0.0.1:9999",
			ConnectTimeout: "30s",
			RequestTimeout: "0s",
		},
		Report: ReportConfig{
			Timeout: "30s",
		},
		Server: ServerConfig{
			Addr:   "127.0.0.1:9999",
			DBPath: "data/badger",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, then applies .env files and
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	LoadEnvFiles()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadEnvFiles loads .env files from the working directory, if present.
// Variables already set in the process environment win.
func LoadEnvFiles() []string {
	var loaded []string
	for _, file := range []string{".env", ".env.local"} {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			continue
		}
		loaded = append(loaded, file)
	}
	return loaded
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("POSTFEED_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("POSTFEED_CONNECT_TIMEOUT"); v != "" {
		c.API.ConnectTimeout = v
	}
	if v := os.Getenv("POSTFEED_REQUEST_TIMEOUT"); v != "" {
		c.API.RequestTimeout = v
	}
	if v := os.Getenv("POSTFEED_REPORT_TIMEOUT"); v != "" {
		c.Report.Timeout = v
	}
	if v := os.Getenv("POSTFEED_MAX_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("POSTFEED_MAX_CONCURRENCY: invalid integer %q", v)
		}
		c.Report.MaxConcurrency = n
	}
	if v := os.Getenv("POSTFEED_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("POSTFEED_DB"); v != "" {
		c.Server.DBPath = v
	}
	if v := os.Getenv("POSTFEED_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("POSTFEED_LOG_BODIES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("POSTFEED_LOG_BODIES: invalid boolean %q", v)
		}
		c.Logging.LogBodies = b
	}
	return nil
}

// Validate checks the configuration for values that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("api.base_url: missing host")
	}
	for name, value := range map[string]string{
		"api.connect_timeout": c.API.ConnectTimeout,
		"api.request_timeout": c.API.RequestTimeout,
		"report.timeout":      c.Report.Timeout,
	} {
		if _, err := parseDuration(value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if c.Report.MaxConcurrency < 0 {
		return fmt.Errorf("report.max_concurrency must not be negative, got %d", c.Report.MaxConcurrency)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	return nil
}

// GetConnectTimeout returns the dial timeout of the API client.
func (c *Config) GetConnectTimeout() time.Duration {
	d, _ := parseDuration(c.API.ConnectTimeout)
	return d
}

// GetRequestTimeout returns the per-request timeout; zero means none.
func (c *Config) GetRequestTimeout() time.Duration {
	d, _ := parseDuration(c.API.RequestTimeout)
	return d
}

// GetReportTimeout returns the overall deadline of a report run; zero means none.
func (c *Config) GetReportTimeout() time.Duration {
	d, _ := parseDuration(c.Report.Timeout)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %s", s)
	}
	return d, nil
}
