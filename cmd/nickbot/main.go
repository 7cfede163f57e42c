package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"nick-lab/domain/nick"
	"nick-lab/internal"
	"nick-lab/observability"
	"nick-lab/repositories"
	"nick-lab/runtime"
	"nick-lab/runtime/workers"
	"nick-lab/services"
	"nick-lab/sink"
	"os"
	"os/signal"
	"syscall"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nickbot terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and only returns once the console input is exhausted
// or a signal is received, so deferred cleanups always run.
func run() (int, error) {
	// 1. Configuration & Logger
	if err := godotenv.Load(); err != nil && !goerrors.Is(err, fs.ErrNotExist) {
		return exitConfig, fmt.Errorf(".env error: %w", err)
	}
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	owners, err := config.Owners()
	if err != nil {
		return exitConfig, err
	}
	fields, err := config.FieldSet()
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	if log.Enabled(context.Background(), slog.LevelDebug) {
		endpoint := "/inspect"
		url := fmt.Sprintf("http://localhost:%d%s?prefix=%s", config.DebugPort, endpoint, "nick:")
		log.Info("Debug Badger inspector available", "url", url)
		database.StartDebugServer(db, config.DebugPort, endpoint, repositories.NickMapper)
	}

	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	nickRepository, err := repositories.NewNickRepository(db, log)
	if err != nil {
		return exitRuntime, err
	}
	defer func() {
		_ = nickRepository.Close()
	}()

	// 3. Metrics
	var registry *prometheus.Registry
	metrics := observability.NewMetrics(nil)
	if config.MetricsAddr != "" {
		registry = prometheus.NewRegistry()
		metrics = observability.NewMetrics(registry)
	}

	var repository repositories.INickRepository = nickRepository
	if config.CacheSizeMB > 0 {
		cached := repositories.NewCachedNickRepository(nickRepository, config.CacheSizeMB, log, metrics)
		if registry != nil {
			observability.NewCacheEntriesGauge(registry, cached.EntryCount)
		}
		repository = cached
	}

	// 4. Commands
	service := services.NewNickGroupService(repository, fields, log)
	commands := runtime.NewCommandRegistry()
	runtime.RegisterNickCommands(commands, service)
	runtime.RegisterHelpCommand(commands, config.CommandPrefix)
	dispatcher := runtime.NewDispatcher(log, commands, nick.DefaultCatalog,
		sink.NewConsoleSink(os.Stdout, config.BotName), metrics, config.CommandPrefix, owners)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervision
	supervisor := workers.NewSupervisor(log, config.RestartInterval)
	console := workers.NewConsoleWorker(log, dispatcher, os.Stdin)
	supervisor.Add(console)
	if registry != nil {
		supervisor.Add(workers.NewMetricsServerWorker(log, config.MetricsAddr, registry))
	}

	log.Info("nickbot ready",
		"commands", commands.Names(),
		"prefix", config.CommandPrefix,
		"fields", len(fields),
		slog.Int("owners", len(owners)))

	// The metrics server would outlive the console: stop everything once stdin is closed.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-console.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()
	supervisor.Run(runCtx)

	log.Info("Program stopped cleanly")
	return exitOK, nil
}
