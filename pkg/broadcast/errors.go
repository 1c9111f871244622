package broadcast

import "errors"

var (
	// ErrNoReceivers is returned by Send when no subscriber accepted the value.
	ErrNoReceivers = errors.New("no receivers for send")

	// ErrPoisoned is returned once a goroutine panicked while holding the registry lock.
	// The broadcaster is unusable after that.
	ErrPoisoned = errors.New("poisoned lock: another goroutine panicked while holding it")

	// ErrClosed is returned by operations on a closed broadcaster, and by
	// Receiver.Recv once every queued value has been drained after the broadcaster closed.
	ErrClosed = errors.New("broadcaster closed")

	// ErrReceiverClosed is returned by Receiver.Recv after the receiver itself was closed.
	ErrReceiverClosed = errors.New("receiver closed")
)

// BroadcastError is the error type returned by Broadcaster operations.
// It wraps one of ErrNoReceivers, ErrPoisoned or ErrClosed, so errors.Is works as usual.
//
// A failed Send hands the original value back through Value, except when the
// lock was poisoned: in that case the value is lost.
type BroadcastError[T any] struct {
	err      error
	value    T
	hasValue bool
}

func noReceiversError[T any](v T) *BroadcastError[T] {
	return &BroadcastError[T]{err: ErrNoReceivers, value: v, hasValue: true}
}

func poisonedError[T any]() *BroadcastError[T] {
	return &BroadcastError[T]{err: ErrPoisoned}
}

func closedError[T any]() *BroadcastError[T] {
	return &BroadcastError[T]{err: ErrClosed}
}

func closedSendError[T any](v T) *BroadcastError[T] {
	return &BroadcastError[T]{err: ErrClosed, value: v, hasValue: true}
}

// Error implements the error interface.
func (e *BroadcastError[T]) Error() string {
	return e.err.Error()
}

// Unwrap returns the sentinel describing the failure kind.
func (e *BroadcastError[T]) Unwrap() error {
	return e.err
}

// Value returns the value that could not be delivered.
// The second result is false when the error carries no payload (ErrPoisoned, or a failed Subscribe).
func (e *BroadcastError[T]) Value() (T, bool) {
	return e.value, e.hasValue
}

// Undelivered extracts the undelivered value from an error returned by Send.
func Undelivered[T any](err error) (T, bool) {
	var be *BroadcastError[T]
	if errors.As(err, &be) {
		return be.Value()
	}
	var zero T
	return zero, false
}
