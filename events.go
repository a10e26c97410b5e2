package storelink

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"
)

// Adaptive polling defaults for event watchers.
const (
	WatchInitialInterval   = 2 * time.Second
	WatchMaxBackoff        = 30 * time.Second
	WatchBackoffMultiplier = 1.5
	WatchJitterFactor      = 0.3
)

func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		interval:   WatchInitialInterval,
		maxBackoff: WatchMaxBackoff,
		multiplier: WatchBackoffMultiplier,
		jitter:     WatchJitterFactor,
	}
}

// WatchOrderEvents returns a channel that receives order events as the
// platform publishes them. The feed is polled with adaptive backoff:
// while events keep arriving the base interval is used, and after empty
// polls the interval grows up to the configured maximum. The channel is
// closed when ctx is cancelled.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
//	defer cancel()
//
//	for event := range client.WatchOrderEvents(ctx) {
//	    fmt.Printf("order %s: %s\n", event.OrderID, event.Data.Type)
//	}
func (c *Client) WatchOrderEvents(ctx context.Context, opts ...WatchOption) <-chan OrderEvent {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	fetch := func(ctx context.Context, cursor string) ([]OrderEvent, string, error) {
		page, err := c.OrderEvents(ctx, cursor)
		if err != nil {
			return nil, cursor, err
		}
		return page.Events, page.Cursor, nil
	}
	return watchFeed(ctx, c.logger, cfg, fetch)
}

// WatchOrderEventsFunc calls fn for each order event until ctx is
// cancelled. This is a convenience wrapper around WatchOrderEvents.
func (c *Client) WatchOrderEventsFunc(ctx context.Context, fn func(OrderEvent), opts ...WatchOption) {
	for event := range c.WatchOrderEvents(ctx, opts...) {
		fn(event)
	}
}

// WatchDeliveryEvents returns a channel that receives third-party
// delivery events, polled with the same adaptive backoff as
// WatchOrderEvents. The channel is closed when ctx is cancelled.
func (c *Client) WatchDeliveryEvents(ctx context.Context, opts ...WatchOption) <-chan DeliveryEvent {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	fetch := func(ctx context.Context, cursor string) ([]DeliveryEvent, string, error) {
		page, err := c.DeliveryEvents(ctx, cursor, 0)
		if err != nil {
			return nil, cursor, err
		}
		return page.Events, page.Cursor, nil
	}
	return watchFeed(ctx, c.logger, cfg, fetch)
}

// watchFeed polls a cursor feed and fans events into a channel. A poll
// that yields events resets the interval to the base; an empty poll or a
// failed poll grows it by the backoff multiplier, capped at maxBackoff.
func watchFeed[T any](ctx context.Context, logger *zap.Logger, cfg *watchConfig, fetch func(context.Context, string) ([]T, string, error)) <-chan T {
	ch := make(chan T, 16)

	go func() {
		defer close(ch)

		cursor := cfg.cursor
		interval := cfg.interval

		for {
			events, next, err := fetch(ctx, cursor)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return
				}
				logger.Warn("event poll failed", zap.Error(err))
				interval = nextBackoff(interval, cfg)
			case len(events) > 0:
				cursor = next
				interval = cfg.interval
				for _, event := range events {
					select {
					case <-ctx.Done():
						return
					case ch <- event:
					}
				}
			default:
				cursor = next
				interval = nextBackoff(interval, cfg)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(withJitter(interval, cfg.jitter)):
			}
		}
	}()

	return ch
}

func nextBackoff(interval time.Duration, cfg *watchConfig) time.Duration {
	next := time.Duration(float64(interval) * cfg.multiplier)
	if next > cfg.maxBackoff {
		next = cfg.maxBackoff
	}
	return next
}

// withJitter adds up to factor*interval of random jitter so multiple
// watchers do not synchronize their polls.
func withJitter(interval time.Duration, factor float64) time.Duration {
	if factor <= 0 {
		return interval
	}
	return interval + time.Duration(rand.Float64()*factor*float64(interval))
}
