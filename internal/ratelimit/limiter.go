// Package ratelimit implements the client-side request budget.
//
// The StoreLink platform enforces a per-endpoint requests-per-second limit
// for every auth token. The limiter mirrors that policy locally with a
// sliding one-second window per (token, endpoint) pair, so callers are
// delayed instead of burning their retry budget on 429 responses.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const (
	// windowSpan is the trailing interval over which admissions are counted.
	windowSpan = time.Second

	// windowBuffer is added to computed waits so the window has genuinely
	// rotated when the caller wakes, avoiding a busy re-check.
	windowBuffer = time.Millisecond
)

// Key identifies an independent admission budget. Distinct tokens or
// distinct endpoints never share a budget.
type Key struct {
	Token    string
	Endpoint string
}

// window holds the admission timestamps for one key, oldest first.
// The mutex guards the full purge/check/wait/append sequence so that two
// callers on the same key can never both observe a free slot.
type window struct {
	mu     sync.Mutex
	stamps []time.Time
}

// purge drops timestamps that fell out of the trailing window.
func (w *window) purge(now time.Time) {
	i := 0
	for i < len(w.stamps) && now.Sub(w.stamps[i]) >= windowSpan {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

// Limiter bounds admissions per key to a fixed number per trailing second.
// It never fails on its own; it only delays callers. A nil *Limiter is
// valid and admits everything immediately.
type Limiter struct {
	maxPerSecond int

	mu      sync.Mutex
	windows map[Key]*window
}

// New creates a limiter allowing maxPerSecond admissions per key per
// trailing second. A non-positive maxPerSecond admits everything. Window
// state is created lazily per key and lives for the lifetime of the
// limiter.
func New(maxPerSecond int) *Limiter {
	return &Limiter{
		maxPerSecond: maxPerSecond,
		windows:      make(map[Key]*window),
	}
}

// window returns the window for key, creating it on first use.
func (l *Limiter) window(key Key) *window {
	l.mu.Lock()
	defer l.mu.Unlock()
	w, ok := l.windows[key]
	if !ok {
		w = &window{}
		l.windows[key] = w
	}
	return w
}

// Acquire blocks until a request for key may proceed, then records the
// admission. Admissions for one key are strictly serialized: the caller
// holds the key's lock for the whole decide-and-record sequence, including
// the wait, so concurrent callers cannot overshoot the budget. Waiters on
// other keys are unaffected.
//
// If ctx is cancelled while waiting, Acquire returns ctx.Err() and records
// nothing.
func (l *Limiter) Acquire(ctx context.Context, key Key) error {
	if l == nil || l.maxPerSecond <= 0 {
		return nil
	}

	w := l.window(key)
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	w.purge(now)

	if len(w.stamps) >= l.maxPerSecond {
		// The oldest admission pins the window; once it ages out a slot
		// opens. The decision is made under the lock, so the computed wait
		// stays valid until we wake.
		wait := windowSpan + windowBuffer - now.Sub(w.stamps[0])
		if wait > 0 {
			if err := sleep(ctx, wait); err != nil {
				return err
			}
		}
	}

	w.stamps = append(w.stamps, time.Now())
	return nil
}

// Count returns the number of admissions recorded for key within the
// trailing second. Like Acquire, it purges expired timestamps first.
func (l *Limiter) Count(key Key) int {
	if l == nil {
		return 0
	}

	w := l.window(key)
	w.mu.Lock()
	defer w.mu.Unlock()

	w.purge(time.Now())
	return len(w.stamps)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
