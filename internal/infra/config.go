package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"gateway/internal/domain/media"
)

// Config represents application configuration loaded from environment variables
// and, optionally, a YAML file describing upstream operations.
type Config struct {
	AppEnv             string
	Port               string
	HeyGenAPIKey       string
	HeyGenBaseURL      string
	HeyGenAuthScheme   string
	OperationSchemes   map[string]string
	UpstreamTimeout    time.Duration
	HTTPReadTimeout    time.Duration
	HTTPWriteTimeout   time.Duration
	HTTPIdleTimeout    time.Duration
	RateLimitPerMin    int
	CORSAllowedOrigins []string
	GeoIPDBPath        string
	DefaultLocale      string
	LogFile            string
}

// operationsFile is the shape of HEYGEN_OPERATIONS_FILE.
type operationsFile struct {
	Upstream struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"upstream"`
	Auth struct {
		Default    string            `yaml:"default"`
		Operations map[string]string `yaml:"operations"`
	} `yaml:"auth"`
}

// LoadConfig loads configuration and applies defaults where needed. Values
// from HEYGEN_OPERATIONS_FILE override defaults; environment variables
// override both. A missing API key is a configuration error.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		HeyGenAPIKey:       strings.TrimSpace(os.Getenv("HEYGEN_API_KEY")),
		HeyGenBaseURL:      "https://api.heygen.com",
		HeyGenAuthScheme:   "api_key",
		OperationSchemes:   map[string]string{},
		UpstreamTimeout:    30 * time.Second,
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:    getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		GeoIPDBPath:        os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:      getEnv("DEFAULT_LOCALE", "en-US"),
		LogFile:            os.Getenv("LOG_FILE"),
	}

	if path := strings.TrimSpace(os.Getenv("HEYGEN_OPERATIONS_FILE")); path != "" {
		if err := cfg.applyOperationsFile(path); err != nil {
			return nil, err
		}
	}

	cfg.HeyGenBaseURL = getEnv("HEYGEN_BASE_URL", cfg.HeyGenBaseURL)
	cfg.HeyGenAuthScheme = getEnv("HEYGEN_AUTH_SCHEME", cfg.HeyGenAuthScheme)
	if secs := getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 0); secs > 0 {
		cfg.UpstreamTimeout = time.Duration(secs) * time.Second
	}

	if cfg.HeyGenAPIKey == "" {
		return nil, media.Configuration("HEYGEN_API_KEY is required")
	}

	return cfg, nil
}

func (c *Config) applyOperationsFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read operations file: %w", err)
	}
	var f operationsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse operations file: %w", err)
	}
	if f.Upstream.BaseURL != "" {
		c.HeyGenBaseURL = f.Upstream.BaseURL
	}
	if f.Upstream.TimeoutSeconds > 0 {
		c.UpstreamTimeout = time.Duration(f.Upstream.TimeoutSeconds) * time.Second
	}
	if f.Auth.Default != "" {
		c.HeyGenAuthScheme = f.Auth.Default
	}
	for op, scheme := range f.Auth.Operations {
		c.OperationSchemes[strings.TrimSpace(op)] = strings.TrimSpace(scheme)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
