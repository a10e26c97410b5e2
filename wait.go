package storelink

import (
	"context"
	"time"
)

// WaitForOrderState polls the order's state until it matches one of the
// given states, then returns the matched state. It returns ctx.Err() (or
// context.DeadlineExceeded once the wait timeout elapses) if no match is
// observed in time.
//
// Example:
//
//	state, err := client.WaitForOrderState(ctx, "order-123",
//	    []storelink.OrderState{storelink.OrderStateClosed, storelink.OrderStateCanceled},
//	    storelink.WithWaitTimeout(5*time.Minute),
//	)
func (c *Client) WaitForOrderState(ctx context.Context, orderID string, states []OrderState, opts ...WaitOption) (OrderState, error) {
	cfg := defaultWaitConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	wanted := make(map[OrderState]bool, len(states))
	for _, s := range states {
		wanted[s] = true
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	ticker := time.NewTicker(cfg.pollInterval)
	defer ticker.Stop()

	for {
		results, err := c.OrdersState(ctx, []string{orderID})
		if err != nil {
			return "", err
		}
		for _, result := range results {
			if result.OrderID == orderID && wanted[result.State] {
				return result.State, nil
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}
