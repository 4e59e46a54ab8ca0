// Reelmatch - Similar Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/reelmatch/internal/api"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/kvstore"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/supervisor"
	"github.com/tomtom215/reelmatch/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("catalog_ref", cfg.Artifacts.CatalogRef).
		Str("similarity_ref", cfg.Artifacts.SimilarityRef).
		Str("storage_path", cfg.Storage.Path).
		Str("exclusion", cfg.Recommend.Exclusion).
		Str("tmdb_api_key", logging.SanitizeToken(cfg.Poster.APIKey)).
		Msg("Starting Reelmatch")

	if path := config.ConfigFilePath(); path != "" {
		level := cfg.Logging.Level
		if err := config.WatchConfigFile(path, func() { level = reloadLogLevel(level) }); err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Config file watch disabled")
		}
	}

	kv, err := kvstore.Open(cfg.Storage.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing storage")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	provider, err := newProvider(ctx, &cfg.Artifacts, kv)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to configure artifact sources")
	}

	store, err := provider.Get(ctx)
	if err != nil {
		var loadErr *catalog.LoadError
		if errors.As(err, &loadErr) {
			logging.Fatal().Err(err).Str("stage", loadErr.Stage).Str("ref", loadErr.Ref).Msg("Failed to load catalog")
		}
		logging.Fatal().Err(err).Msg("Failed to load catalog")
	}

	engine, err := recommend.NewEngine(store, engineConfig(&cfg.Recommend), logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	resolver, posterCache := posterResolver(&cfg.Poster, kv)
	if posterCache == nil && cfg.Poster.APIKey == "" {
		logging.Info().Msg("No TMDB API key configured, posters use the placeholder image")
	}

	handler := api.NewHandler(provider, engine, resolver, cfg)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(&cfg.Security))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddDataService(services.NewMaintenanceService(
		services.MaintenanceConfig{},
		kv,
		logging.WithComponent("maintenance"),
		sweepTargets(engine, posterCache)...,
	))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Int("movies", store.Len()).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Reelmatch stopped")
}

// reloadLogLevel re-reads the configuration after a file change, applies
// the new log level and returns the level in effect. Other settings need a
// restart.
func reloadLogLevel(current string) string {
	cfg, err := config.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("Config reload failed, keeping current settings")
		return current
	}
	if cfg.Logging.Level == current || !logging.ValidLevel(cfg.Logging.Level) {
		return current
	}
	logging.SetLevelString(cfg.Logging.Level)
	logging.Info().Str("level", cfg.Logging.Level).Msg("Log level changed")
	return cfg.Logging.Level
}
