package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schemagen/internal/app"
	"schemagen/internal/config"
	"schemagen/internal/core/errors"
)

var (
	configPath  = flag.String("config", "./schemagen.toml", "Path to config file")
	watch       = flag.Bool("watch", false, "Keep running and regenerate on schema changes")
	metricsAddr = flag.String("metrics-addr", "", "Expose /metrics and /health on this address (watch mode)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("schemagen v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: schemagen [flags] <schemas-dir> <output-dir>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	schemasPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	// Reject bad invocations before reading any schema file.
	if err := app.ValidatePaths(schemasPath, outputPath); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
		cfg = config.Default()
	}
	if *metricsAddr != "" {
		cfg.Metrics.Addr = *metricsAddr
	}

	a, err := app.NewApp(cfg, schemasPath, outputPath)
	if err != nil {
		slog.Error("failed to initialize", "error", err)
		os.Exit(exitCode(err))
	}
	defer a.Close()

	// Initial generation
	if _, err := a.Run(""); err != nil {
		slog.Error("generation failed", "error", err)
		if !*watch {
			os.Exit(exitCode(err))
		}
	}

	if !*watch {
		return
	}

	w, err := a.WatchLoop()
	if err != nil {
		slog.Error("failed to start watch mode", "error", err)
		os.Exit(1)
	}
	defer w.Close()

	var obs *app.ObservabilityServer
	if cfg.Metrics.Addr != "" {
		obs = app.NewObservabilityServer(cfg.Metrics.Addr, a)
		if err := obs.Start(); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("watching for schema changes", "path", schemasPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	slog.Info("shutting down")
	if obs != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = obs.Stop(ctx)
	}
}

func exitCode(err error) int {
	if errors.IsCode(err, errors.CodeUsage) {
		return 2
	}
	return 1
}
