package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"studentdash/internal/analytics"
	"studentdash/internal/config"
	"studentdash/internal/dataset"
	"studentdash/internal/db"
	"studentdash/internal/handlers"
	"studentdash/internal/metrics"
	"studentdash/internal/server"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	setupLogging(cfg)

	ui, err := config.LoadYAMLConfig(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", cfg.ConfigFile, err)
	}

	var (
		ds     *dataset.Dataset
		pinger handlers.Pinger
	)

	switch cfg.DatasetSource {
	case config.SourceCSV:
		ds, err = dataset.LoadCSVFile(cfg.DatasetPath)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}

	case config.SourcePostgres:
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		ds, err = database.LoadDataset(ctx)
		if err != nil {
			log.Fatalf("Failed to load dataset: %v", err)
		}
		pinger = database

	default:
		log.Fatalf("Unknown DATASET_SOURCE %q (want %q or %q)", cfg.DatasetSource, config.SourceCSV, config.SourcePostgres)
	}

	store := dataset.NewStore()
	if err := store.Init(ds); err != nil {
		log.Fatalf("Failed to publish dataset: %v", err)
	}
	slog.Info("dataset loaded",
		"source", ds.Source,
		"rows", ds.Len(),
		"id", ds.ID,
		"intensity_derived", ds.IntensityDerived,
	)

	metrics.Init(store)

	var fitter analytics.Fitter
	if cfg.EnableTrendline {
		fitter = analytics.OLSFitter{}
	} else {
		log.Println("Trendlines are disabled. Set ENABLE_TRENDLINE=true to enable.")
	}

	srv := server.New(cfg)
	if err := srv.RegisterRoutes(ctx, server.Deps{
		Store:  store,
		UI:     ui,
		Fitter: fitter,
		DB:     pinger,
	}); err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}

func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.IsDev() {
		opts.Level = slog.LevelDebug
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
		return
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, opts)))
}
