package gateway

import (
	"sync"
	"time"
)

// Backoff constants from spec §4.3: initial 2s, max 64s, multiplier 2.
const (
	InitialBackoff    = 2 * time.Second
	MaxBackoff        = 64 * time.Second
	BackoffMultiplier = 2.0
)

// Backoff calculates the deterministic exponential-backoff delay for
// gateway rebind attempts, with no jitter (see doc.go).
type Backoff struct {
	mu      sync.Mutex
	current time.Duration
}

// NewBackoff creates a backoff calculator starting at InitialBackoff.
func NewBackoff() *Backoff {
	return &Backoff{current: InitialBackoff}
}

// Next returns the delay to use for the next rebind attempt and advances the
// backoff toward MaxBackoff.
func (b *Backoff) Next() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()

	delay := b.current
	next := time.Duration(float64(b.current) * BackoffMultiplier)
	if next > MaxBackoff {
		next = MaxBackoff
	}
	b.current = next
	return delay
}

// Stop resets the backoff to its initial value (spec §4.3/§9: "notifyFailed
// multiplies and clamps; stop resets to min and cancels any scheduled
// rebind" — the cancellation half lives in Binder).
func (b *Backoff) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = InitialBackoff
}

// Current returns the delay the next Next() call would return, without
// advancing.
func (b *Backoff) Current() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}
