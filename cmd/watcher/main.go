package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"careerwatch/internal/config"
	"careerwatch/internal/core"
	"careerwatch/internal/dataset"
	"careerwatch/internal/fetch"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("watcher failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configPath := os.Getenv("CAREERWATCH_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	store, err := dataset.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	httpFetcher := fetch.NewHTTPFetcher(cfg.UserAgent, cfg.FetchTimeout())

	// One browser session for the process lifetime, shared sequentially by
	// all browser-mode sources and released when the run loop exits.
	var browserFetcher fetch.Fetcher
	if hasBrowserSource(cfg) {
		browser, err := fetch.NewBrowser(cfg.UserAgent, cfg.FetchTimeout())
		if err != nil {
			return fmt.Errorf("acquire browser session: %w", err)
		}
		defer func() {
			if err := browser.Close(); err != nil {
				slog.Error("failed to release browser session", "error", err)
			}
		}()
		browserFetcher = browser
	}

	sources, err := core.BuildSources(cfg, httpFetcher, browserFetcher)
	if err != nil {
		return err
	}

	orch := core.NewOrchestrator(store)
	sched := core.NewScheduler(orch, sources)

	slog.Info("watcher started", "sources", len(sources), "data_dir", cfg.DataDir)
	sched.Run(ctx)
	slog.Info("watcher stopped")
	return nil
}

func hasBrowserSource(cfg *config.Config) bool {
	for _, src := range cfg.Sources {
		if src.Mode == config.ModeBrowser {
			return true
		}
	}
	return false
}
