package storelink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// orderStateSequenceHandler serves a state progression, one state per
// request.
func orderStateSequenceHandler(states ...OrderState) http.Handler {
	var calls int32
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		state := states[len(states)-1]
		if int(n) <= len(states) {
			state = states[n-1]
		}
		io.WriteString(w, fmt.Sprintf(
			`{"query_results": [{"order_id": "order-1", "state": "%s"}]}`, state))
	})
}

func TestWaitForOrderState_EventualMatch(t *testing.T) {
	server := newTestServer(t, orderStateSequenceHandler(
		OrderStateAssembling, OrderStateDelivering, OrderStateClosed))
	client := newTestClientWith(t, server)

	state, err := client.WaitForOrderState(context.Background(), "order-1",
		[]OrderState{OrderStateClosed, OrderStateCanceled},
		WithWaitTimeout(5*time.Second),
		WithPollInterval(20*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("WaitForOrderState() error = %v", err)
	}
	if state != OrderStateClosed {
		t.Errorf("state = %q, want closed", state)
	}
}

func TestWaitForOrderState_ImmediateMatch(t *testing.T) {
	server := newTestServer(t, orderStateSequenceHandler(OrderStateClosed))
	client := newTestClientWith(t, server)

	start := time.Now()
	state, err := client.WaitForOrderState(context.Background(), "order-1",
		[]OrderState{OrderStateClosed},
		WithPollInterval(time.Second),
	)
	if err != nil {
		t.Fatalf("WaitForOrderState() error = %v", err)
	}
	if state != OrderStateClosed {
		t.Errorf("state = %q, want closed", state)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("immediate match took %v, want no poll delay", elapsed)
	}
}

func TestWaitForOrderState_Timeout(t *testing.T) {
	server := newTestServer(t, orderStateSequenceHandler(OrderStateAssembling))
	client := newTestClientWith(t, server)

	_, err := client.WaitForOrderState(context.Background(), "order-1",
		[]OrderState{OrderStateClosed},
		WithWaitTimeout(100*time.Millisecond),
		WithPollInterval(20*time.Millisecond),
	)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("WaitForOrderState() error = %v, want context.DeadlineExceeded", err)
	}
}
