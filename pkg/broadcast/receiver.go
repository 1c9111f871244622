package broadcast

import (
	"context"
	"iter"
	"runtime"

	"github.com/google/uuid"
)

// Receiver is the receive-endpoint of a subscription. It yields every value sent
// through the broadcaster after Subscribe returned, in send order.
//
// A Receiver is owned by the subscriber. Close it when done; the broadcaster prunes
// the matching send-endpoint on its next Send. A Receiver that becomes unreachable
// without Close is dropped the same way once the garbage collector reclaims it.
//
// Copies of a Receiver share one subscription, which stays alive while any copy is reachable.
type Receiver[T any] struct {
	*subscription[T]
}

type subscription[T any] struct {
	id uuid.UUID
	q  *queue[T]
}

func newReceiver[T any](q *queue[T]) *Receiver[T] {
	sub := &subscription[T]{id: uuid.New(), q: q}
	runtime.AddCleanup(sub, func(q *queue[T]) { q.closeReceiver() }, q)
	return &Receiver[T]{subscription: sub}
}

// ID returns the subscription identifier, useful for log correlation.
func (r *Receiver[T]) ID() uuid.UUID {
	return r.id
}

// Recv blocks until the next value is available.
// It returns ErrClosed once the broadcaster is gone and every queued value was received,
// ErrReceiverClosed after Close, or ctx.Err() when the context is done first.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	for {
		v, res := r.q.pop()
		switch res {
		case popValue:
			return v, nil
		case popEnded:
			return v, ErrClosed
		case popDropped:
			return v, ErrReceiverClosed
		}

		select {
		case <-r.q.ready:
		case <-r.q.done:
		case <-r.q.dropped:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// TryRecv returns the next queued value without blocking.
func (r *Receiver[T]) TryRecv() (T, bool) {
	v, res := r.q.pop()
	return v, res == popValue
}

// All returns a single-use sequence over received values.
// The sequence stops when the broadcaster closes, the receiver is closed,
// ctx is done, or the consumer breaks out of the loop.
//
//	for msg := range rx.All(ctx) {
//		handle(msg)
//	}
func (r *Receiver[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := r.Recv(ctx)
			if err != nil {
				return
			}
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of values queued but not yet received.
func (r *Receiver[T]) Len() int {
	return r.q.len()
}

// Close drops the receiver. Pending values are discarded and blocked Recv calls return
// ErrReceiverClosed. Calling Close more than once is safe.
func (r *Receiver[T]) Close() {
	r.q.closeReceiver()
}
