package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/internal/config"
	"github.com/goliatone/go-medsite/internal/logging"
	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/forms"
	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/site"
	"github.com/goliatone/go-medsite/pkg/vitals"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	addr := flag.String("addr", cfg.Server.Addr, "listen address")
	baseURL := flag.String("base-url", cfg.Site.BaseURL, "public origin used in canonical links and the sitemap")
	variant := flag.String("theme", cfg.Site.ThemeVariant, "theme variant (default, high-contrast)")
	contentDir := flag.String("content", "", "directory of YAML/JSON fixtures (embedded content if empty)")
	templateDir := flag.String("templates", "", "directory of template overrides, re-read on every request")
	flag.Parse()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, flags{
		addr:        *addr,
		baseURL:     *baseURL,
		variant:     *variant,
		contentDir:  *contentDir,
		templateDir: *templateDir,
	}, logger); err != nil {
		logger.Error("medsite stopped", zap.Error(err))
		os.Exit(1)
	}
}

type flags struct {
	addr        string
	baseURL     string
	variant     string
	contentDir  string
	templateDir string
}

func run(ctx context.Context, cfg *config.Config, f flags, logger *zap.Logger) error {
	options := []site.Option{
		site.WithBaseURL(f.baseURL),
		site.WithThemeVariant(f.variant),
		site.WithTemplateDir(f.templateDir),
		site.WithDefaultLocale(cfg.Site.DefaultLocale),
		site.WithResetDelay(cfg.Forms.ResetDelay),
		site.WithIdentity(cfg.Site.IdentityEnabled),
		site.WithLogger(logger),
	}

	if f.contentDir != "" {
		store, err := content.LoadFS(os.DirFS(f.contentDir))
		if err != nil {
			return fmt.Errorf("load content: %w", err)
		}
		options = append(options, site.WithContent(store))
	}

	csrf, err := forms.NewCSRF(cfg.Forms.CSRFSecret, 0)
	if err != nil {
		return err
	}
	options = append(options, site.WithCSRF(csrf))

	if cfg.Forms.WebhookURL != "" {
		backend, err := forms.NewWebhookBackend(cfg.Forms.WebhookURL, forms.WithWebhookLogger(logger))
		if err != nil {
			return fmt.Errorf("form webhook: %w", err)
		}
		options = append(options, site.WithBackend(backend))
	} else {
		options = append(options, site.WithBackend(forms.NewSimulatedBackend(cfg.Forms.SubmitDelay)))
	}

	if cfg.Vitals.AnalyticsEndpoint != "" {
		forwarder, err := vitals.NewForwarder(cfg.Vitals.AnalyticsEndpoint, vitals.WithForwarderLogger(logger))
		if err != nil {
			return fmt.Errorf("vitals forwarder: %w", err)
		}
		defer forwarder.Close()
		options = append(options, site.WithVitalsSink(forwarder))
	}

	if cfg.Redis.Enabled() {
		store, err := i18n.NewRedisStore(ctx, i18n.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		options = append(options, site.WithPreferenceStore(store))
	}

	s, err := site.New(options...)
	if err != nil {
		return err
	}

	logger.Info("medsite starting",
		zap.String("base_url", f.baseURL),
		zap.String("theme", f.variant),
		zap.String("locale", cfg.Site.DefaultLocale),
		zap.Bool("webhook", cfg.Forms.WebhookURL != ""),
		zap.Bool("redis", cfg.Redis.Enabled()),
	)
	return site.Serve(ctx, f.addr, s.Handler(), cfg.Server.ShutdownGrace, logger)
}
