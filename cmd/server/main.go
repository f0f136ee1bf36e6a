package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jtsang27/crust-sim/internal/config"
	"github.com/jtsang27/crust-sim/internal/game"
	"github.com/jtsang27/crust-sim/internal/game/cards"
	"github.com/jtsang27/crust-sim/internal/repository"
	"github.com/jtsang27/crust-sim/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting simulation server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Card definitions: a configured file overrides the built-in set. The
	// file must include tower definitions as well.
	provider := cards.Default()
	if cfg.Match.CardsFile != "" {
		provider, err = cards.LoadFile(cfg.Match.CardsFile)
		if err != nil {
			logger.Fatal("failed to load card definitions",
				zap.String("path", cfg.Match.CardsFile),
				zap.Error(err),
			)
		}
		logger.Info("card definitions loaded",
			zap.String("path", cfg.Match.CardsFile),
			zap.Int("cards", provider.Len()),
		)
	}

	// Persistence is optional; without a database URL matches are kept in
	// memory and replays only reach the filesystem.
	var store server.MatchStore
	if cfg.Database.URL != "" {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		stats := db.Stats()
		logger.Info("database connection pool initialized",
			zap.Int32("total_conns", stats.TotalConns()),
			zap.Int32("idle_conns", stats.IdleConns()),
		)
		store = repository.NewMatchRepository(db)
	}

	engine := game.NewEngine(logger, provider)
	logger.Info("simulation engine initialized",
		zap.Int("cards", provider.Len()),
		zap.String("replay_dir", cfg.Match.ReplayDir),
	)

	go func() {
		if wsErr := server.StartWebSocketServer(cfg.Server, engine, store, logger); wsErr != nil {
			logger.Error("websocket server error", zap.Error(wsErr))
		}
	}()

	logger.Info("simulation server ready",
		zap.String("address", cfg.Server.Address),
	)

	sig := <-sigChan
	logger.Info("received shutdown signal", zap.String("signal", sig.String()))

	logger.Info("shutting down gracefully...")
	cancel()

	logger.Info("simulation server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
