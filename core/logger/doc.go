// Package logger provides structured logging utilities built on Go's standard slog package.
//
// New builds a *slog.Logger from functional options:
//
//	log := logger.New(
//		logger.WithDevelopment("fanout-demo"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log := logger.New(
//		logger.WithProduction("fanout-demo"),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return ready-made slog.Attr values. Helpers taking an error or an
// identifier return an empty Attr for nil/empty input, which slog drops:
//
//	log.Debug("pruned stale subscribers",
//		logger.Pruned(2),
//		logger.Delivered(5),
//	)
//
//	log.Error("send failed",
//		logger.Error(err),
//		logger.Producer(3),
//	)
package logger
