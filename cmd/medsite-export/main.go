package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-medsite/internal/config"
	"github.com/goliatone/go-medsite/internal/logging"
	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/site"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dir := flag.String("dir", "dist", "output directory")
	baseURL := flag.String("base-url", cfg.Site.BaseURL, "public origin of the static host")
	variant := flag.String("theme", cfg.Site.ThemeVariant, "theme variant (default, high-contrast)")
	contentDir := flag.String("content", "", "directory of YAML/JSON fixtures (embedded content if empty)")
	concurrency := flag.Int("concurrency", 4, "pages rendered at once")
	checkLinks := flag.Bool("check-links", true, "fail when an internal link does not resolve")
	reportPath := flag.String("report", "", "write the export report as JSON to this file")
	flag.Parse()

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	options := []site.Option{
		site.WithStatic(true),
		site.WithBaseURL(*baseURL),
		site.WithThemeVariant(*variant),
		site.WithDefaultLocale(cfg.Site.DefaultLocale),
		site.WithResetDelay(cfg.Forms.ResetDelay),
		site.WithIdentity(cfg.Site.IdentityEnabled),
		site.WithLogger(logger),
	}
	if *contentDir != "" {
		store, err := content.LoadFS(os.DirFS(*contentDir))
		if err != nil {
			log.Fatalf("Failed to load content: %v", err)
		}
		options = append(options, site.WithContent(store))
	}

	s, err := site.New(options...)
	if err != nil {
		log.Fatalf("Failed to build site: %v", err)
	}

	report, err := s.Export(context.Background(), site.ExportOptions{
		Dir:         *dir,
		Concurrency: *concurrency,
		CheckLinks:  *checkLinks,
	})
	if *reportPath != "" {
		if werr := writeReport(*reportPath, report); werr != nil {
			logger.Error("write report", zap.Error(werr))
		}
	}
	if errors.Is(err, site.ErrBrokenLinks) {
		for _, link := range report.BrokenLinks {
			fmt.Fprintf(os.Stderr, "%s -> %s\n", link.Page, link.Href)
		}
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	fmt.Printf("Exported %d pages (%d files) to %s\n", len(report.Pages), report.Files, *dir)
}

func writeReport(path string, report site.ExportReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
