package broadcast

import (
	"slices"
	"sync"
)

// registry is the set of live send-endpoints shared by every handle of a Broadcaster.
type registry[T any] struct {
	mu       sync.Mutex
	senders  []*queue[T]
	poisoned bool
	closed   bool
}

// withLock runs fn while holding the lock. If fn panics the registry is marked
// poisoned before the lock is released and the panic keeps propagating.
func (r *registry[T]) withLock(fn func() error) error {
	r.mu.Lock()
	finished := false
	defer func() {
		if !finished {
			r.poisoned = true
		}
		r.mu.Unlock()
	}()

	if r.poisoned {
		finished = true
		return ErrPoisoned
	}

	err := fn()
	finished = true
	return err
}

// add appends a send-endpoint. Caller holds the lock.
func (r *registry[T]) add(q *queue[T]) {
	r.senders = append(r.senders, q)
}

// deliver hands a copy of v to every endpoint in registration order and keeps only
// the endpoints that accepted it. Caller holds the lock.
func (r *registry[T]) deliver(v T, clone func(T) T) (delivered, pruned int) {
	before := len(r.senders)
	r.senders = slices.DeleteFunc(r.senders, func(q *queue[T]) bool {
		if q.push(clone(v)) {
			delivered++
			return false
		}
		return true
	})
	return delivered, before - len(r.senders)
}

// release ends the stream for every remaining endpoint. Caller holds the lock.
func (r *registry[T]) release() int {
	n := len(r.senders)
	for _, q := range r.senders {
		q.closeSender()
	}
	r.senders = nil
	r.closed = true
	return n
}

// releaseUnreachable is run by the runtime once no Broadcaster handle references
// the registry anymore.
func releaseUnreachable[T any](r *registry[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.closed {
		r.release()
	}
}
