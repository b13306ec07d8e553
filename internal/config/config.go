// Package config loads the medsite commands' settings from a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/tokens"
)

// Submission timing bounds. Visitors should always see the submitting state
// and have time to read the confirmation before the form resets.
const (
	MinSubmitDelay = 1000 * time.Millisecond
	MaxSubmitDelay = 1500 * time.Millisecond
	MinResetDelay  = 3 * time.Second
	MaxResetDelay  = 5 * time.Second
)

type Config struct {
	Server  ServerConfig
	Site    SiteConfig
	Forms   FormsConfig
	Vitals  VitalsConfig
	Redis   RedisConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Addr          string
	ShutdownGrace time.Duration
}

type SiteConfig struct {
	BaseURL         string
	ThemeVariant    string
	DefaultLocale   string
	IdentityEnabled bool
}

type FormsConfig struct {
	SubmitDelay time.Duration
	ResetDelay  time.Duration
	// WebhookURL receives valid submissions. Empty keeps the simulated
	// backend.
	WebhookURL string
	// CSRFSecret signs form tokens. Empty generates a per-process key.
	CSRFSecret string
}

type VitalsConfig struct {
	// AnalyticsEndpoint receives forwarded metrics. Empty logs them.
	AnalyticsEndpoint string
}

// RedisConfig is optional; an empty Host keeps language preferences in
// cookies only.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Host) != ""
}

type LoggingConfig struct {
	Level string
	File  string
}

// Load reads .env when present, then the environment, and validates the
// result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a Config from the environment without validating it.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:          getEnv("MEDSITE_ADDR", ":8080"),
			ShutdownGrace: getEnvDuration("MEDSITE_SHUTDOWN_GRACE", 10*time.Second),
		},
		Site: SiteConfig{
			BaseURL:         strings.TrimRight(getEnv("MEDSITE_BASE_URL", "http://localhost:8080"), "/"),
			ThemeVariant:    getEnv("MEDSITE_THEME_VARIANT", tokens.VariantDefault),
			DefaultLocale:   strings.ToLower(getEnv("MEDSITE_DEFAULT_LOCALE", i18n.English)),
			IdentityEnabled: getEnvBool("MEDSITE_IDENTITY_ENABLED", false),
		},
		Forms: FormsConfig{
			SubmitDelay: getEnvDuration("MEDSITE_SUBMIT_DELAY", 1200*time.Millisecond),
			ResetDelay:  getEnvDuration("MEDSITE_RESET_DELAY", 4*time.Second),
			WebhookURL:  getEnv("MEDSITE_WEBHOOK_URL", ""),
			CSRFSecret:  getEnv("MEDSITE_CSRF_SECRET", ""),
		},
		Vitals: VitalsConfig{
			AnalyticsEndpoint: getEnv("ANALYTICS_ENDPOINT", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Logging: LoggingConfig{
			Level: strings.ToLower(getEnv("LOG_LEVEL", "info")),
			File:  getEnv("LOG_FILE", ""),
		},
	}
}

var logLevels = []string{"debug", "info", "warn", "error"}

// Validate reports every malformed setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("MEDSITE_ADDR is required"))
	}
	if c.Server.ShutdownGrace <= 0 {
		errs = append(errs, errors.New("MEDSITE_SHUTDOWN_GRACE must be positive"))
	}
	if err := checkURL("MEDSITE_BASE_URL", c.Site.BaseURL, true); err != nil {
		errs = append(errs, err)
	}
	if c.Site.ThemeVariant != tokens.VariantDefault && c.Site.ThemeVariant != tokens.VariantHighContrast {
		errs = append(errs, fmt.Errorf("MEDSITE_THEME_VARIANT %q is not one of %s, %s", c.Site.ThemeVariant, tokens.VariantDefault, tokens.VariantHighContrast))
	}
	if !slices.Contains(i18n.Supported, c.Site.DefaultLocale) {
		errs = append(errs, fmt.Errorf("MEDSITE_DEFAULT_LOCALE %q is not supported (%s)", c.Site.DefaultLocale, strings.Join(i18n.Supported, ", ")))
	}
	if c.Forms.SubmitDelay < MinSubmitDelay || c.Forms.SubmitDelay > MaxSubmitDelay {
		errs = append(errs, fmt.Errorf("MEDSITE_SUBMIT_DELAY %s must be between %s and %s", c.Forms.SubmitDelay, MinSubmitDelay, MaxSubmitDelay))
	}
	if c.Forms.ResetDelay < MinResetDelay || c.Forms.ResetDelay > MaxResetDelay {
		errs = append(errs, fmt.Errorf("MEDSITE_RESET_DELAY %s must be between %s and %s", c.Forms.ResetDelay, MinResetDelay, MaxResetDelay))
	}
	if err := checkURL("MEDSITE_WEBHOOK_URL", c.Forms.WebhookURL, false); err != nil {
		errs = append(errs, err)
	}
	if err := checkURL("ANALYTICS_ENDPOINT", c.Vitals.AnalyticsEndpoint, false); err != nil {
		errs = append(errs, err)
	}
	if c.Redis.Enabled() && (c.Redis.Port <= 0 || c.Redis.Port > 65535) {
		errs = append(errs, fmt.Errorf("REDIS_PORT %d is out of range", c.Redis.Port))
	}
	if c.Redis.DB < 0 {
		errs = append(errs, fmt.Errorf("REDIS_DB %d must not be negative", c.Redis.DB))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of %s", c.Logging.Level, strings.Join(logLevels, ", ")))
	}
	return errors.Join(errs...)
}

func checkURL(name, value string, required bool) error {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%s %q must be an absolute http(s) URL", name, value)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go durations ("1.2s") or bare milliseconds ("1200").
// Unparseable values yield -1 so Validate reports them instead of silently
// using the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return -1
}
