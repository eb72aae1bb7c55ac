package concurrent

import (
	"sync"
	"time"
)

type Clock func() time.Time

type throttleOptions struct {
	clock Clock
}

type ThrottleOption func(*throttleOptions)

// WithClock replaces time.Now, for tests.
func WithClock(clock Clock) ThrottleOption {
	return func(o *throttleOptions) {
		o.clock = clock
	}
}

// Throttle wraps fn in a leading-edge rate limiter.
// the first call runs fn right away and opens a window of length window; calls inside
// the window are dropped (not queued) and nothing fires when the window closes.
// the returned invoker reports whether fn ran.
func Throttle(fn func(), window time.Duration, opts ...ThrottleOption) func() bool {
	o := throttleOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		mu          sync.Mutex
		windowStart time.Time
		started     bool
	)

	return func() bool {
		mu.Lock()
		now := o.clock()
		if started && now.Sub(windowStart) < window {
			mu.Unlock()
			return false
		}
		started = true
		windowStart = now
		mu.Unlock()

		fn()
		return true
	}
}
