package broadcast

import "sync"

// queue is an unbounded FIFO connecting one send-endpoint (held by the registry)
// with one Receiver.
type queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int

	// ready holds at most one pending wakeup for a blocked receiver.
	ready chan struct{}
	// done is closed when the sending side goes away.
	done chan struct{}
	// dropped is closed when the receiving side goes away.
	dropped chan struct{}

	senderClosed   bool
	receiverClosed bool
}

func newQueue[T any]() *queue[T] {
	return &queue[T]{
		ready:   make(chan struct{}, 1),
		done:    make(chan struct{}),
		dropped: make(chan struct{}),
	}
}

// push enqueues v. It reports false once the receiving side is gone,
// which is how the registry detects stale subscribers.
func (q *queue[T]) push(v T) bool {
	q.mu.Lock()
	if q.receiverClosed || q.senderClosed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, v)
	q.mu.Unlock()

	q.notify()
	return true
}

type popResult uint8

const (
	popValue popResult = iota
	popEmpty
	popEnded
	popDropped
)

// pop dequeues the oldest value. popEnded means nothing is queued and the
// sender is gone; popDropped means the receiver was closed.
func (q *queue[T]) pop() (v T, res popResult) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.receiverClosed {
		return v, popDropped
	}
	if q.head == len(q.items) {
		if q.senderClosed {
			return v, popEnded
		}
		return v, popEmpty
	}

	var zero T
	v = q.items[q.head]
	q.items[q.head] = zero
	q.head++

	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > len(q.items)/2 && q.head >= 32:
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}

	// Another goroutine may be waiting on the same receiver.
	if q.head < len(q.items) {
		q.notify()
	}
	return v, popValue
}

func (q *queue[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *queue[T]) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// closeSender marks the end of the stream. Already queued values stay receivable.
func (q *queue[T]) closeSender() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.senderClosed {
		return
	}
	q.senderClosed = true
	close(q.done)
}

// closeReceiver drops the receiving side and discards pending values.
func (q *queue[T]) closeReceiver() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.receiverClosed {
		return
	}
	q.receiverClosed = true
	q.items = nil
	q.head = 0
	close(q.dropped)
}
