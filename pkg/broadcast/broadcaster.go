package broadcast

import (
	"errors"
	"io"
	"log/slog"
	"runtime"

	"github.com/dmitrymomot/fanout/core/logger"
)

// Broadcaster is an unbounded fan-out sender. Every Receiver obtained from Subscribe
// gets its own copy of each value sent afterwards.
//
// A Broadcaster is a handle: copies (or Clone) refer to the same set of subscribers,
// so independent producers can share it. All methods are safe for concurrent use.
// The zero value behaves like a closed broadcaster; use New.
type Broadcaster[T any] struct {
	s *shared[T]
}

type shared[T any] struct {
	reg    *registry[T]
	clone  func(T) T
	logger *slog.Logger
}

func identity[T any](v T) T { return v }

// New creates a broadcaster with no subscribers.
//
// Example:
//
//	b := broadcast.New[string](broadcast.WithLogger[string](log))
//	rx, _ := b.Subscribe()
//	_ = b.Send("hello")
func New[T any](opts ...Option[T]) Broadcaster[T] {
	s := &shared[T]{
		reg:    &registry[T]{},
		clone:  identity[T],
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Receivers see end-of-stream once every handle is gone.
	runtime.AddCleanup(s, releaseUnreachable[T], s.reg)

	return Broadcaster[T]{s: s}
}

// Clone returns another handle to the same broadcaster.
func (b Broadcaster[T]) Clone() Broadcaster[T] {
	return Broadcaster[T]{s: b.s}
}

// Subscribe registers a new receiver. It observes every value sent after Subscribe
// returns and none sent before.
//
// Returns ErrPoisoned if the broadcaster was poisoned, ErrClosed if it was closed.
func (b Broadcaster[T]) Subscribe() (*Receiver[T], error) {
	if b.s == nil {
		return nil, closedError[T]()
	}

	q := newQueue[T]()
	err := b.s.reg.withLock(func() error {
		if b.s.reg.closed {
			return ErrClosed
		}
		b.s.reg.add(q)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPoisoned) {
			return nil, poisonedError[T]()
		}
		return nil, closedError[T]()
	}

	rx := newReceiver(q)
	b.s.logger.Debug("subscriber registered", logger.Subscriber(rx.ID().String()))
	return rx, nil
}

// Send delivers a copy of v to every live receiver, one after another in subscription
// order, and prunes receivers that have been closed or dropped.
//
// It returns nil if at least one receiver accepted the value. Otherwise the error
// wraps ErrNoReceivers and carries v back, see Undelivered. On a closed broadcaster
// the error wraps ErrClosed and also carries v.
//
// If the broadcaster is poisoned the error wraps ErrPoisoned and v is dropped.
func (b Broadcaster[T]) Send(v T) error {
	if b.s == nil {
		return closedSendError(v)
	}

	var delivered, pruned int
	err := b.s.reg.withLock(func() error {
		if b.s.reg.closed {
			return ErrClosed
		}
		delivered, pruned = b.s.reg.deliver(v, b.s.clone)
		return nil
	})

	switch {
	case errors.Is(err, ErrPoisoned):
		b.s.logger.Error("send on poisoned broadcaster", logger.Error(err))
		return poisonedError[T]()
	case errors.Is(err, ErrClosed):
		return closedSendError(v)
	}

	if pruned > 0 {
		b.s.logger.Debug("pruned stale subscribers",
			logger.Pruned(pruned),
			logger.Delivered(delivered),
		)
	}

	if delivered == 0 {
		return noReceiversError(v)
	}
	return nil
}

// Len returns the number of registered receivers. Receivers dropped since the
// last Send are still counted until that next Send prunes them.
func (b Broadcaster[T]) Len() int {
	if b.s == nil {
		return 0
	}

	// A poisoned registry still reports its last known size.
	b.s.reg.mu.Lock()
	defer b.s.reg.mu.Unlock()
	return len(b.s.reg.senders)
}

// Close shuts the broadcaster down for every handle. Receivers can still drain
// values sent before Close, then Recv returns ErrClosed.
// Subsequent Send and Subscribe calls return ErrClosed.
func (b Broadcaster[T]) Close() error {
	if b.s == nil {
		return closedError[T]()
	}

	var released int
	err := b.s.reg.withLock(func() error {
		if b.s.reg.closed {
			return ErrClosed
		}
		released = b.s.reg.release()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPoisoned) {
			return poisonedError[T]()
		}
		return closedError[T]()
	}

	b.s.logger.Debug("broadcaster closed", logger.Subscribers(released))
	return nil
}
