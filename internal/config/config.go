package config

import (
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Mode selects which transports are started.
type Mode string

const (
	ModeHTTP  Mode = "http"
	ModeStdio Mode = "stdio"
	ModeBoth  Mode = "both"
)

// ErrNoProviderKeys is returned by Validate when no provider credential is
// configured; the process could never serve a tool and must not start.
var ErrNoProviderKeys = errors.New("no provider API keys configured: set at least one of OPENWEATHER_API_KEY, NEWS_API_KEY, ALPHA_VANTAGE_API_KEY")

type Config struct {
	// Server
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Mode     Mode   `json:"mode"`
	LogLevel string `json:"log_level"`

	// CORS
	CORSOrigins []string `json:"cors_origins"`

	// Auth
	APIKeyHeader string `json:"api_key_header"`
	APIKey       string `json:"api_key"`
	EnableAuth   bool   `json:"enable_auth"`

	// Provider credentials
	OpenWeatherAPIKey  string `json:"openweather_api_key"`
	NewsAPIKey         string `json:"news_api_key"`
	AlphaVantageAPIKey string `json:"alpha_vantage_api_key"`

	// Outbound calls
	ProviderTimeoutSeconds int `json:"provider_timeout_seconds"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Host:                   DefaultHost,
		Port:                   DefaultPort,
		Mode:                   DefaultMode,
		LogLevel:               DefaultLogLevel,
		CORSOrigins:            DefaultCORSOrigins,
		APIKeyHeader:           DefaultAPIKeyHeader,
		ProviderTimeoutSeconds: DefaultProviderTimeoutSeconds,
	}

	// Load from JSON config file if specified
	if path := getEnv("APIFUSE_CONFIG", ""); path != "" {
		if err := loadJSON(path, cfg); err != nil {
			return nil, err
		}
	}

	// Environment overrides
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks startup invariants. A server with zero provider keys could
// never register a tool, so it refuses to start.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeHTTP, ModeStdio, ModeBoth:
	default:
		return errors.New("mode must be one of: http, stdio, both")
	}
	if c.OpenWeatherAPIKey == "" && c.NewsAPIKey == "" && c.AlphaVantageAPIKey == "" {
		return ErrNoProviderKeys
	}
	return nil
}

// ProviderTimeout is the per-call deadline for outbound provider requests.
func (c *Config) ProviderTimeout() time.Duration {
	return time.Duration(c.ProviderTimeoutSeconds) * time.Second
}

// HTTPEnabled reports whether the HTTP transport should be started.
func (c *Config) HTTPEnabled() bool { return c.Mode == ModeHTTP || c.Mode == ModeBoth }

// StdioEnabled reports whether the stdio tool-protocol transport should be started.
func (c *Config) StdioEnabled() bool { return c.Mode == ModeStdio || c.Mode == ModeBoth }

func loadJSON(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

func applyEnvOverrides(cfg *Config) {
	if v := getEnv("MCP_SERVER_HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("MCP_SERVER_PORT", ""); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v := getEnv("MCP_SERVER_MODE", ""); v != "" {
		cfg.Mode = Mode(strings.ToLower(v))
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		cfg.LogLevel = v
	}
	if v := getEnv("CORS_ORIGINS", ""); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}
	if v := getEnv("MCP_AUTH_ENABLED", ""); v != "" {
		cfg.EnableAuth = v == "true" || v == "1"
	}
	if v := getEnv("MCP_API_KEY", ""); v != "" {
		cfg.APIKey = v
	}
	if v := getEnv("OPENWEATHER_API_KEY", ""); v != "" {
		cfg.OpenWeatherAPIKey = v
	}
	if v := getEnv("NEWS_API_KEY", ""); v != "" {
		cfg.NewsAPIKey = v
	}
	if v := getEnv("ALPHA_VANTAGE_API_KEY", ""); v != "" {
		cfg.AlphaVantageAPIKey = v
	}
	if v := getEnv("PROVIDER_TIMEOUT_SECONDS", ""); v != "" {
		if t, err := strconv.Atoi(v); err == nil && t > 0 {
			cfg.ProviderTimeoutSeconds = t
		}
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
