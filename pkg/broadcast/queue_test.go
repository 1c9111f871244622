package broadcast

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue(t *testing.T) {
	t.Parallel()

	t.Run("fifo across compaction", func(t *testing.T) {
		t.Parallel()

		q := newQueue[int]()
		const n = 1000
		for i := range n {
			require.True(t, q.push(i))
		}
		// Interleave pops and pushes so the head index wraps through compaction.
		for i := range n {
			v, res := q.pop()
			require.Equal(t, popValue, res)
			require.Equal(t, i, v)
			if i%3 == 0 {
				require.True(t, q.push(n+i))
			}
		}
		for i := 0; i < n; i += 3 {
			v, res := q.pop()
			require.Equal(t, popValue, res)
			require.Equal(t, n+i, v)
		}

		_, res := q.pop()
		assert.Equal(t, popEmpty, res)
		assert.Equal(t, 0, q.len())
	})

	t.Run("push fails after receiver closed", func(t *testing.T) {
		t.Parallel()

		q := newQueue[string]()
		require.True(t, q.push("a"))
		q.closeReceiver()
		q.closeReceiver()

		assert.False(t, q.push("b"))
		_, res := q.pop()
		assert.Equal(t, popDropped, res)
		assert.Equal(t, 0, q.len())
	})

	t.Run("sender close keeps queued values", func(t *testing.T) {
		t.Parallel()

		q := newQueue[string]()
		require.True(t, q.push("a"))
		q.closeSender()
		q.closeSender()

		assert.False(t, q.push("b"))

		v, res := q.pop()
		require.Equal(t, popValue, res)
		assert.Equal(t, "a", v)

		_, res = q.pop()
		assert.Equal(t, popEnded, res)
	})

	t.Run("signals pending values to a second waiter", func(t *testing.T) {
		t.Parallel()

		q := newQueue[int]()
		rx := &Receiver[int]{subscription: &subscription[int]{q: q}}

		require.True(t, q.push(1))
		require.True(t, q.push(2))

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		results := make(chan int, 2)
		for range 2 {
			go func() {
				v, err := rx.Recv(ctx)
				if err == nil {
					results <- v
				}
			}()
		}

		got := map[int]bool{}
		for range 2 {
			select {
			case v := <-results:
				got[v] = true
			case <-ctx.Done():
				t.Fatal("waiter starved")
			}
		}
		assert.Equal(t, map[int]bool{1: true, 2: true}, got)
	})
}

func TestReceiver(t *testing.T) {
	t.Parallel()

	t.Run("recv honours context", func(t *testing.T) {
		t.Parallel()

		rx := newReceiver(newQueue[int]())
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := rx.Recv(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("close unblocks recv", func(t *testing.T) {
		t.Parallel()

		rx := newReceiver(newQueue[int]())
		errCh := make(chan error, 1)
		go func() {
			_, err := rx.Recv(context.Background())
			errCh <- err
		}()

		time.Sleep(10 * time.Millisecond)
		rx.Close()

		select {
		case err := <-errCh:
			assert.ErrorIs(t, err, ErrReceiverClosed)
		case <-time.After(time.Second):
			t.Fatal("recv did not return after close")
		}
	})

	t.Run("all stops on break", func(t *testing.T) {
		t.Parallel()

		q := newQueue[int]()
		rx := newReceiver(q)
		for i := range 5 {
			q.push(i)
		}

		var got []int
		for v := range rx.All(context.Background()) {
			got = append(got, v)
			if v == 2 {
				break
			}
		}
		assert.Equal(t, []int{0, 1, 2}, got)
		assert.Equal(t, 2, rx.Len())
	})

	t.Run("ids are unique", func(t *testing.T) {
		t.Parallel()

		a := newReceiver(newQueue[int]())
		b := newReceiver(newQueue[int]())
		assert.NotEqual(t, a.ID(), b.ID())
	})
}

func TestRegistry_WithLock(t *testing.T) {
	t.Parallel()

	r := &registry[int]{}
	require.NoError(t, r.withLock(func() error { return nil }))
	assert.ErrorIs(t, r.withLock(func() error { return ErrClosed }), ErrClosed)
	assert.False(t, r.poisoned)

	assert.Panics(t, func() {
		_ = r.withLock(func() error { panic("boom") })
	})
	assert.True(t, r.poisoned)

	called := false
	err := r.withLock(func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrPoisoned)
	assert.False(t, called)

	// The mutex must have been released by the panicking call.
	assert.True(t, r.mu.TryLock())
	r.mu.Unlock()
}
