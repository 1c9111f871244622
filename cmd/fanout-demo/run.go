package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/fanout/core/logger"
	"github.com/dmitrymomot/fanout/pkg/broadcast"
)

// message is what producers broadcast.
type message struct {
	Producer int
	Seq      int
}

// report summarizes one demo run.
type report struct {
	Sent        int64
	Undelivered int64
	Received    map[string]int
	Dropped     int
}

func run(ctx context.Context, cfg Config, log *slog.Logger) (report, error) {
	start := time.Now()
	b := broadcast.New(broadcast.WithLogger[message](log.With(logger.Component("broadcast"))))

	type consumer struct {
		rx   *broadcast.Receiver[message]
		drop bool
	}
	consumers := make([]consumer, 0, cfg.Subscribers)
	for i := range cfg.Subscribers {
		rx, err := b.Subscribe()
		if err != nil {
			return report{}, fmt.Errorf("subscribe: %w", err)
		}
		drop := cfg.DropEvery > 0 && (i+1)%cfg.DropEvery == 0
		consumers = append(consumers, consumer{rx: rx, drop: drop})
	}

	rep := report{Received: make(map[string]int, len(consumers))}
	counts := make([]int, len(consumers))

	var consumerGroup errgroup.Group
	for i, c := range consumers {
		consumerGroup.Go(func() error {
			defer c.rx.Close()
			for range c.rx.All(ctx) {
				counts[i]++
				if c.drop {
					log.Info("subscriber leaving", logger.Subscriber(c.rx.ID().String()))
					return nil
				}
			}
			return ctx.Err()
		})
	}

	var sent, undelivered atomic.Int64
	producers, pctx := errgroup.WithContext(ctx)
	for p := range cfg.Producers {
		handle := b.Clone()
		producers.Go(func() error {
			for seq := range cfg.Messages {
				if err := pctx.Err(); err != nil {
					return err
				}
				err := handle.Send(message{Producer: p, Seq: seq})
				switch {
				case err == nil:
					sent.Add(1)
				case errors.Is(err, broadcast.ErrNoReceivers):
					msg, _ := broadcast.Undelivered[message](err)
					undelivered.Add(1)
					log.Debug("no receivers", logger.Producer(msg.Producer), logger.Count("seq", msg.Seq))
				default:
					return fmt.Errorf("producer %d: %w", p, err)
				}
			}
			return nil
		})
	}

	producerErr := producers.Wait()
	if err := b.Close(); err != nil {
		return report{}, fmt.Errorf("close broadcaster: %w", err)
	}
	consumerErr := consumerGroup.Wait()
	if err := errors.Join(producerErr, consumerErr); err != nil {
		return report{}, err
	}

	for i, c := range consumers {
		rep.Received[c.rx.ID().String()] = counts[i]
		if c.drop {
			rep.Dropped++
		}
	}
	rep.Sent = sent.Load()
	rep.Undelivered = undelivered.Load()

	log.Info("fan-out finished",
		logger.Count("sent", int(rep.Sent)),
		logger.Count("undelivered", int(rep.Undelivered)),
		logger.Subscribers(len(consumers)),
		logger.Count("dropped", rep.Dropped),
		logger.Elapsed(start),
	)
	return rep, nil
}
