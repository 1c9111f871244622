package broadcast_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

func TestReceiver_DroppedWithoutClose(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	func() {
		_, err := b.Subscribe()
		require.NoError(t, err)
	}()

	require.Eventually(t, func() bool {
		runtime.GC()
		return errors.Is(b.Send(1), broadcast.ErrNoReceivers)
	}, 5*time.Second, 10*time.Millisecond)

	require.Equal(t, 0, b.Len())
}

func TestReceiver_CopyKeepsSubscription(t *testing.T) {
	t.Parallel()

	b := broadcast.New[int]()
	cp := func() broadcast.Receiver[int] {
		rx, err := b.Subscribe()
		require.NoError(t, err)
		return *rx
	}()

	for range 5 {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}

	require.NoError(t, b.Send(7))
	require.Equal(t, 1, b.Len())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := cp.Recv(ctx)
	require.NoError(t, err)
	require.Equal(t, 7, got)
}

func TestBroadcaster_AllHandlesDropped(t *testing.T) {
	t.Parallel()

	rx := func() *broadcast.Receiver[string] {
		b := broadcast.New[string]()
		dup := b.Clone()
		rx, err := b.Subscribe()
		require.NoError(t, err)
		require.NoError(t, dup.Send("last words"))
		return rx
	}()

	got, err := rx.Recv(context.Background())
	require.NoError(t, err)
	require.Equal(t, "last words", got)

	require.Eventually(t, func() bool {
		runtime.GC()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		_, err := rx.Recv(ctx)
		return errors.Is(err, broadcast.ErrClosed)
	}, 5*time.Second, 10*time.Millisecond)
}
