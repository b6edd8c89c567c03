package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/adapter/bridge"
	"github.com/marmos91/filebridge/pkg/config"
	"github.com/marmos91/filebridge/pkg/entry/resolver"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file (default: search standard locations)")
	logLevel := flag.String("log-level", "", "Override log level (DEBUG, INFO, WARN, ERROR)")
	initConfig := flag.Bool("init-config", false, "Write a sample configuration file and exit")
	flag.Parse()

	if *initConfig {
		path, err := config.InitConfig(false)
		if err != nil {
			log.Fatalf("Failed to initialize configuration: %v", err)
		}
		log.Printf("Configuration written to %s", path)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output); err != nil {
		log.Fatalf("Failed to configure logger: %v", err)
	}

	logger.Info("filebridge starting")
	logger.Info("Log level set to: %s", cfg.Logging.Level)

	table, err := config.BuildRoots(cfg)
	if err != nil {
		log.Fatalf("Failed to build storage roots: %v", err)
	}
	for _, root := range table.All() {
		logger.Debug("Storage root %s: %s", root.Class, root.Path)
	}

	engine, jnl, err := config.BuildEngine(cfg)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	if jnl != nil {
		defer jnl.Close()

		// Report transfers interrupted by a previous crash
		pending, err := jnl.Pending(ctx)
		if err != nil {
			logger.Warn("Failed to read transfer journal: %v", err)
		}
		for _, rec := range pending {
			logger.Warn("Incomplete transfer from previous run: %s -> %s (started %v)",
				rec.Source, rec.Destination, rec.StartedAt)
		}
	}

	b := bridge.New(engine, resolver.New(table))
	srv := bridge.NewServer(b, os.Stdin, os.Stdout)

	// Serve requests in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx)
	}()

	// Wait for interrupt signal or server exit
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Serving on stdin/stdout. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		logger.Info("Shutdown signal received, initiating graceful shutdown...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Server shutdown error: %v", err)
			os.Exit(1)
		}
		<-serverDone
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		if err != nil {
			logger.Error("Server error: %v", err)
			os.Exit(1)
		}
		logger.Info("Server stopped")
	}
}
