package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"autocaption/contract"
	"autocaption/domain"
	"autocaption/infrastructure/storage"
	"autocaption/internal"
	"autocaption/metadata"
	"autocaption/runtime"
	"autocaption/runtime/workers"
	"autocaption/services"
	"autocaption/sink"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/database"
	"github.com/mama165/sdk-go/logs"
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
		fmt.Fprintf(os.Stderr, "Captioner terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run keeps every defer (badger close first of all) on the exit path.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}
	location, err := config.Location()
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Database (BadgerDB)
	db, err := badger.Open(buildBadgerOpts(config, logger, ctx))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	if logger.Enabled(ctx, slog.LevelDebug) && config.DebugPort > 0 {
		endpoint := "/inspect"
		logger.Info("Debug Badger inspector available", "url", fmt.Sprintf("http://localhost:%d%s", config.DebugPort, endpoint))
		database.StartDebugServer(db, config.DebugPort, endpoint, CaptionMapper)
	}

	// 3. Services
	templates := storage.NewTemplateRepository(db, logger)
	tasks := storage.NewTaskRepository(db, logger)
	prober := metadata.NewFfprobeProber(logger, config.FfprobePath)
	captionService := services.NewCaptionService(logger, templates, prober, services.CaptionSettings{
		ProbeTimeout:      config.ProbeTimeout,
		ParseMode:         services.ParseMode(config.ParseMode),
		MaxCaptionLength:  config.MaxCaptionLength,
		FallbackToDefault: config.FallbackToDefaultTemplate,
		Location:          location,
	})

	// 4. Runtime
	counter := domain.NewCaptionCounter()
	supervisor := workers.NewSupervisor(logger, config.RestartInterval)
	orchestrator := runtime.NewOrchestrator(logger, supervisor, tasks, captionService, counter, runtime.Settings{
		InboxDir:        config.InboxDir,
		NumberOfWorkers: config.NumberOfWorkers,
		BatchSize:       config.BufferSize,
		ScanInterval:    config.ScanInterval,
		SettleAge:       config.RequiredModTimeAge,
		PollInterval:    config.PollInterval,
		MetricInterval:  config.MetricInterval,
	})
	orchestrator.RegisterSinks(sinks(logger)...)

	logger.Info("Captioner started", "inbox", config.InboxDir, "parse_mode", config.ParseMode)
	if err := orchestrator.Start(ctx); err != nil {
		return exitRuntime, err
	}

	logger.Info("Shutting down gracefully...")
	orchestrator.Stop()
	logger.Info("Program stopped cleanly")
	return exitOK, nil
}

func sinks(logger *slog.Logger) []contract.CaptionSink {
	return []contract.CaptionSink{
		sink.NewSidecarSink(logger),
		sink.NewLogSink(logger),
	}
}

func buildBadgerOpts(config internal.Config, logger *slog.Logger, ctx context.Context) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)

	if logger.Enabled(ctx, slog.LevelDebug) {
		options = options.WithLoggingLevel(badger.DEBUG).
			WithBypassLockGuard(true)
	} else {
		options = options.WithLoggingLevel(badger.WARNING)
	}

	return options
}

func CaptionMapper(key string, val []byte) database.InspectRow {
	row := database.DefaultMapper(key, val)
	row.Type, row.Detail = storage.Describe(key, val)
	return row
}
