// Command fanout-demo runs several producers against one broadcaster and reports
// what each subscriber received. Settings come from the environment, see Config.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/fanout/core/config"
	"github.com/dmitrymomot/fanout/core/logger"
)

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		slog.Error("failed to load config", logger.Error(err))
		os.Exit(1)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		slog.Error("invalid config", logger.Error(err))
		os.Exit(1)
	}

	opts := []logger.Option{
		logger.WithLevel(level),
		logger.WithAttr(slog.String("service", cfg.AppName)),
	}
	if cfg.LogFormat == "json" {
		opts = append(opts, logger.WithJSONFormatter())
	}
	log := logger.New(opts...)

	if err := cfg.validate(); err != nil {
		log.Error("invalid config", logger.Error(err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, cfg, log); err != nil {
		log.Error("demo failed", logger.Error(err))
		os.Exit(1)
	}
}
