package broadcast

import "log/slog"

// Option configures a Broadcaster.
type Option[T any] func(*shared[T])

// WithCloner sets the function used to copy a value for each subscriber.
// Plain assignment is used by default, which is enough for value types.
// Provide a deep copy when T holds maps, slices or pointers that subscribers may mutate.
//
// A cloner that panics poisons the broadcaster.
func WithCloner[T any](fn func(T) T) Option[T] {
	return func(s *shared[T]) {
		if fn != nil {
			s.clone = fn
		}
	}
}

// WithLogger configures structured logging for the broadcaster.
// Pruning is logged at debug level, poisoning at error level.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(s *shared[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}
