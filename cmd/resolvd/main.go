// Resolvd is a record resolution daemon with an HTTP API.
//
// This binary starts the resolvd HTTP server wired to the configured record
// store. Free-text fragments posted to /api/v1/resolve are matched against
// store records and resolved to a single record identifier.
//
// Configuration is loaded from a YAML file plus environment overrides. See
// internal/config for details.
//
// Usage:
//
//	# Start with the default config file (~/.config/resolvd/config.yaml)
//	resolvd
//
//	# Start with an explicit config file
//	resolvd --config /etc/resolvd/config.yaml
//
//	# Override settings via environment
//	SERVER_PORT=9292 STORE_DRIVER=sqlite STORE_PATH=records.db resolvd
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resolvd/internal/config"
	resolvdhttp "github.com/fyrsmithlabs/resolvd/internal/http"
	"github.com/fyrsmithlabs/resolvd/internal/logging"
	"github.com/fyrsmithlabs/resolvd/internal/recordstore"
	"github.com/fyrsmithlabs/resolvd/internal/resolver"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()
	args := flag.Args()

	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  resolvd            Start the resolvd daemon\n")
			fmt.Fprintf(os.Stderr, "  resolvd version    Show version information\n")
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("resolvd by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the resolvd server and blocks until the context is cancelled.
func run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	logger.Info("Starting resolvd",
		zap.String("version", version),
		zap.String("store_driver", cfg.Store.Driver),
		zap.Int("port", cfg.Server.Port),
		zap.Duration("shutdown_timeout", time.Duration(cfg.Server.ShutdownTimeout)))

	store, err := recordstore.NewStore(cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("record store close failed", zap.Error(err))
		}
	}()

	svc, err := resolver.NewService(store, logger, resolver.Config{
		FetchLimit: cfg.Resolver.FetchLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize resolver: %w", err)
	}

	srv, err := resolvdhttp.NewServer(svc, logger, &resolvdhttp.Config{
		Host: cfg.Server.Host,
		Port: cfg.Server.Port,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize http server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
