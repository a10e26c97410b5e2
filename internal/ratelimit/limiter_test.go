package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestAcquire_BurstWithinBudget(t *testing.T) {
	l := New(5)
	key := Key{Token: "token-a", Endpoint: "/b2b/v1/orders/create"}

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := l.Acquire(context.Background(), key); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
	}
	elapsed := time.Since(start)

	if elapsed > 100*time.Millisecond {
		t.Errorf("5 acquires took %v, want < 100ms", elapsed)
	}
	if got := l.Count(key); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestAcquire_WaitsWhenWindowFull(t *testing.T) {
	l := New(2)
	key := Key{Token: "token-a", Endpoint: "/b2b/v1/orders/create"}

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Acquire(context.Background(), key); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
	}
	elapsed := time.Since(start)

	// The third acquire has to wait until the first admission is a full
	// second old.
	if elapsed < time.Second {
		t.Errorf("3rd acquire completed after %v, want >= 1s", elapsed)
	}
	if elapsed > 1500*time.Millisecond {
		t.Errorf("3rd acquire completed after %v, want ~1s", elapsed)
	}
}

func TestAcquire_KeysAreIndependent(t *testing.T) {
	l := New(2)
	keyA := Key{Token: "token-a", Endpoint: "/b2b/v1/orders/create"}
	keyB := Key{Token: "token-b", Endpoint: "/b2b/v1/orders/create"}
	keyC := Key{Token: "token-a", Endpoint: "/b2b/v1/stocks/update"}

	// Fill keyA's window.
	for i := 0; i < 2; i++ {
		if err := l.Acquire(context.Background(), keyA); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
	}

	// Different token and different endpoint must not be delayed.
	start := time.Now()
	for i := 0; i < 2; i++ {
		if err := l.Acquire(context.Background(), keyB); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
		if err := l.Acquire(context.Background(), keyC); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("independent keys delayed by %v, want < 100ms", elapsed)
	}
}

func TestCount_PurgesExpiredAdmissions(t *testing.T) {
	l := New(5)
	key := Key{Token: "token-a", Endpoint: "/b2b/v1/stores/get"}

	for i := 0; i < 3; i++ {
		if err := l.Acquire(context.Background(), key); err != nil {
			t.Fatalf("Acquire() error = %v", err)
		}
	}
	if got := l.Count(key); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}

	time.Sleep(1100 * time.Millisecond)

	if got := l.Count(key); got != 0 {
		t.Errorf("Count() after 1.1s = %d, want 0", got)
	}
}

func TestAcquire_NoOvershootUnderConcurrency(t *testing.T) {
	const maxPerSecond = 5
	l := New(maxPerSecond)
	key := Key{Token: "token-a", Endpoint: "/b2b/v1/orders/create"}

	var (
		mu         sync.Mutex
		admissions []time.Time
		wg         sync.WaitGroup
	)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background(), key); err != nil {
				t.Errorf("Acquire() error = %v", err)
				return
			}
			mu.Lock()
			admissions = append(admissions, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(admissions) != 20 {
		t.Fatalf("admissions = %d, want 20", len(admissions))
	}

	// No trailing one-second interval may contain more than maxPerSecond
	// admissions. Timestamps are captured outside the limiter's lock, so
	// allow a small scheduling skew when pairing them up.
	const skew = 50 * time.Millisecond
	for i := range admissions {
		count := 0
		for j := range admissions {
			d := admissions[j].Sub(admissions[i])
			if d >= 0 && d < time.Second-skew {
				count++
			}
		}
		if count > maxPerSecond {
			t.Fatalf("found %d admissions within one second, want <= %d", count, maxPerSecond)
		}
	}
}

func TestAcquire_ContextCancelledWhileWaiting(t *testing.T) {
	l := New(1)
	key := Key{Token: "token-a", Endpoint: "/b2b/v1/orders/create"}

	if err := l.Acquire(context.Background(), key); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Acquire(ctx, key)
	if err != context.DeadlineExceeded {
		t.Errorf("Acquire() error = %v, want context.DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("cancelled acquire took %v, want ~100ms", elapsed)
	}

	// The cancelled acquire must not have recorded an admission.
	if got := l.Count(key); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestAcquire_NilLimiter(t *testing.T) {
	var l *Limiter

	key := Key{Token: "token-a", Endpoint: "/b2b/v1/orders/create"}
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := l.Acquire(context.Background(), key); err != nil {
			t.Fatalf("Acquire() on nil limiter error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("nil limiter delayed by %v, want immediate", elapsed)
	}
	if got := l.Count(key); got != 0 {
		t.Errorf("Count() on nil limiter = %d, want 0", got)
	}
}
