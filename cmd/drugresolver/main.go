package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/medadhere/drugresolver/api"
	"github.com/medadhere/drugresolver/config"
	"github.com/medadhere/drugresolver/internal/alias"
	"github.com/medadhere/drugresolver/internal/loader"
	"github.com/medadhere/drugresolver/internal/logging"
	"github.com/medadhere/drugresolver/internal/metrics"
	"github.com/medadhere/drugresolver/internal/resolver"
)

func main() {
	var (
		help       = flag.Bool("help", false, "Show help message")
		version    = flag.Bool("version", false, "Show version information")
		configPath = flag.String("config", "", "Path to YAML config file")
		datasetURL = flag.String("dataset-url", "", "URL of the reference drug dataset CSV (overrides config)")
	)

	flag.Parse()

	if *help {
		fmt.Printf("Drug Resolver - medication name resolution engine\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s --config config.yaml\n", os.Args[0])
		fmt.Printf("  %s --dataset-url https://example.org/drugs.csv\n", os.Args[0])
		return
	}

	if *version {
		fmt.Printf("Drug Resolver v1.0.0\n")
		fmt.Printf("Token + phonetic indexed search with fuzzy name correction\n")
		return
	}

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *datasetURL != "" {
		settings.Dataset.URL = *datasetURL
	}

	logging.Setup(settings.Logging.Level, settings.Logging.Format)
	log := slog.Default().With("component", "main")

	var engineMetrics *metrics.Metrics
	if settings.Metrics.Enabled {
		engineMetrics = metrics.New(nil)
	}

	coordinator := loader.New(loader.Config{
		URL:          settings.Dataset.URL,
		FetchTimeout: settings.Dataset.FetchTimeout,
		PrefixCap:    settings.Engine.PrefixCap,
		Metrics:      engineMetrics,
	})

	aliases := alias.New(settings.Engine.ExtraAliases)

	resolverService, err := resolver.NewService(coordinator, aliases, settings.Engine, engineMetrics)
	if err != nil {
		log.Error("failed to create resolver service", "error", err)
		os.Exit(1)
	}

	// Warm the index in the background so the first interactive query does
	// not pay for the build. Queries arriving earlier simply wait on the
	// readiness signal.
	go func() {
		if _, err := coordinator.EnsureLoaded(context.Background()); err != nil {
			log.Error("background index warm-up interrupted", "error", err)
		}
	}()

	if settings.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, resolverService, coordinator, settings)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", settings.Server.Port),
		Handler:      router,
		ReadTimeout:  settings.Server.ReadTimeout,
		WriteTimeout: settings.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting server", "port", settings.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), settings.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
