package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks.

// ============================================================================
// Error Handling
// ============================================================================

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Timing
// ============================================================================

// Elapsed calculates and logs the duration since the start time.
func Elapsed(start time.Time) slog.Attr {
	return slog.Duration("elapsed", time.Since(start))
}

// ============================================================================
// Identifiers
// ============================================================================

// Subscriber creates an attribute for a subscription identifier.
func Subscriber(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("subscriber_id", id)
}

// Producer creates an attribute for a producer index.
func Producer(n int) slog.Attr {
	return slog.Int("producer", n)
}

// ============================================================================
// Fan-out
// ============================================================================

// Subscribers creates an attribute for the number of registered subscribers.
func Subscribers(n int) slog.Attr {
	return slog.Int("subscribers", n)
}

// Delivered creates an attribute for the number of receivers that accepted a value.
func Delivered(n int) slog.Attr {
	return slog.Int("delivered", n)
}

// Pruned creates an attribute for the number of stale subscribers removed.
func Pruned(n int) slog.Attr {
	return slog.Int("pruned", n)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
