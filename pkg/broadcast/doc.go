// Package broadcast provides an unbounded, multi-consumer broadcast channel.
//
// A single logical sender fans values out to a dynamic set of receivers. Each
// receiver gets its own copy of every value sent after it subscribed, in send order.
//
// # Usage
//
//	b := broadcast.New[string]()
//	defer b.Close()
//
//	rx, err := b.Subscribe()
//	if err != nil {
//		return err
//	}
//	defer rx.Close()
//
//	go func() {
//		for msg := range rx.All(ctx) {
//			fmt.Println("received:", msg)
//		}
//	}()
//
//	if err := b.Send("hello"); err != nil {
//		// no one was listening
//	}
//
// # Handles
//
// Broadcaster is a small value type holding a pointer to shared state. Copying it,
// or calling Clone, yields another handle to the same subscribers, so several
// producers can send to one audience:
//
//	producer := b.Clone()
//	go func() { _ = producer.Send("from another goroutine") }()
//
// Close affects every handle. When all handles become unreachable without Close,
// receivers still observe the end of the stream after draining.
//
// # Delivery and pruning
//
// Send and Subscribe serialize on one mutex. Send walks the registered receivers in
// subscription order and enqueues a copy of the value for each. Queues are unbounded,
// so Send never waits for a slow consumer.
//
// There is no separate liveness check: a receiver that was closed (or garbage
// collected) is detected when a delivery to it fails, and is removed during that
// same Send.
//
// # Copying values
//
// Values are copied with plain assignment. If T contains maps, slices or pointers
// and receivers mutate what they get, supply a deep copy:
//
//	b := broadcast.New(broadcast.WithCloner(func(m map[string]int) map[string]int {
//		return maps.Clone(m)
//	}))
//
// # Errors
//
// Send returns nil when at least one receiver accepted the value. Otherwise it
// returns a *BroadcastError wrapping ErrNoReceivers, and the value is handed back:
//
//	if err := b.Send(msg); errors.Is(err, broadcast.ErrNoReceivers) {
//		msg, _ = broadcast.Undelivered[Message](err)
//		retryLater(msg)
//	}
//
// If a goroutine panics while holding the broadcaster's lock (for example inside a
// cloner), the broadcaster becomes poisoned: the panic propagates to that caller and
// every later Send, Subscribe and Close fails with ErrPoisoned. A value passed to a
// Send that fails with ErrPoisoned is lost, unlike the ErrNoReceivers case.
//
// # Non-goals
//
// Values sent while nobody is subscribed are not buffered for later subscribers,
// and there is no backpressure.
package broadcast
