package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MEDSITE_ADDR", "MEDSITE_SHUTDOWN_GRACE", "MEDSITE_BASE_URL", "MEDSITE_THEME_VARIANT",
		"MEDSITE_DEFAULT_LOCALE", "MEDSITE_IDENTITY_ENABLED", "MEDSITE_SUBMIT_DELAY",
		"MEDSITE_RESET_DELAY", "MEDSITE_WEBHOOK_URL", "MEDSITE_CSRF_SECRET", "ANALYTICS_ENDPOINT",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultsAreValid(t *testing.T) {
	clearEnv(t)

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("addr: %q", cfg.Server.Addr)
	}
	if cfg.Forms.SubmitDelay != 1200*time.Millisecond {
		t.Fatalf("submit delay: %s", cfg.Forms.SubmitDelay)
	}
	if cfg.Redis.Enabled() {
		t.Fatalf("redis should be disabled without a host")
	}
	if cfg.Site.IdentityEnabled {
		t.Fatalf("identity widget should be off by default")
	}
}

func TestFromEnvReadsOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MEDSITE_ADDR", ":9090")
	t.Setenv("MEDSITE_BASE_URL", "https://www.example.com/")
	t.Setenv("MEDSITE_THEME_VARIANT", "high-contrast")
	t.Setenv("MEDSITE_DEFAULT_LOCALE", "ES")
	t.Setenv("MEDSITE_IDENTITY_ENABLED", "true")
	t.Setenv("MEDSITE_SUBMIT_DELAY", "1500")
	t.Setenv("MEDSITE_RESET_DELAY", "3s")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Fatalf("addr: %q", cfg.Server.Addr)
	}
	if cfg.Site.BaseURL != "https://www.example.com" {
		t.Fatalf("base url should drop trailing slash: %q", cfg.Site.BaseURL)
	}
	if cfg.Site.DefaultLocale != "es" {
		t.Fatalf("locale: %q", cfg.Site.DefaultLocale)
	}
	if !cfg.Site.IdentityEnabled {
		t.Fatalf("identity should be enabled")
	}
	if cfg.Forms.SubmitDelay != 1500*time.Millisecond || cfg.Forms.ResetDelay != 3*time.Second {
		t.Fatalf("delays: %s %s", cfg.Forms.SubmitDelay, cfg.Forms.ResetDelay)
	}
	if !cfg.Redis.Enabled() || cfg.Redis.Port != 6380 || cfg.Redis.DB != 2 {
		t.Fatalf("redis: %+v", cfg.Redis)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("log level: %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsMalformedValues(t *testing.T) {
	cases := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{name: "submit too fast", key: "MEDSITE_SUBMIT_DELAY", val: "200ms", want: "MEDSITE_SUBMIT_DELAY"},
		{name: "submit unparseable", key: "MEDSITE_SUBMIT_DELAY", val: "soon", want: "MEDSITE_SUBMIT_DELAY"},
		{name: "reset too long", key: "MEDSITE_RESET_DELAY", val: "10s", want: "MEDSITE_RESET_DELAY"},
		{name: "relative base url", key: "MEDSITE_BASE_URL", val: "/site", want: "MEDSITE_BASE_URL"},
		{name: "ftp webhook", key: "MEDSITE_WEBHOOK_URL", val: "ftp://hooks.example.com", want: "MEDSITE_WEBHOOK_URL"},
		{name: "analytics without host", key: "ANALYTICS_ENDPOINT", val: "https://", want: "ANALYTICS_ENDPOINT"},
		{name: "unknown locale", key: "MEDSITE_DEFAULT_LOCALE", val: "fr", want: "MEDSITE_DEFAULT_LOCALE"},
		{name: "unknown variant", key: "MEDSITE_THEME_VARIANT", val: "neon", want: "MEDSITE_THEME_VARIANT"},
		{name: "unknown log level", key: "LOG_LEVEL", val: "verbose", want: "LOG_LEVEL"},
		{name: "zero grace", key: "MEDSITE_SHUTDOWN_GRACE", val: "0s", want: "MEDSITE_SHUTDOWN_GRACE"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !strings.Contains(err.Error(), "config validation failed") || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	clearEnv(t)
	cfg := FromEnv()
	cfg.Forms.SubmitDelay = 0
	cfg.Redis = RedisConfig{Host: "cache", Port: 70000}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	for _, want := range []string{"MEDSITE_SUBMIT_DELAY", "REDIS_PORT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("missing %s in %v", want, err)
		}
	}
}
