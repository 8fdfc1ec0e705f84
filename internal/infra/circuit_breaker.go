package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Closed → Open → Half-Open. Protects the process from hammering the external
// FX quote API while it is down: after enough consecutive failures all calls
// fast-fail until the cooldown elapses, then a single probe is let through.

// BreakerState represents the current circuit state.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal — requests flow
	BreakerOpen                         // tripped — fast-fail all requests
	BreakerHalfOpen                     // probing — one request allowed
)

// String returns a human-readable state name (for the health endpoint / logs).
func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrBreakerOpen is returned when Execute is called while the breaker is open.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// Breaker implements the pattern with thread-safe state transitions.
type Breaker struct {
	mu           sync.Mutex
	state        BreakerState
	failures     int
	successes    int
	lastFailure  time.Time
	maxFailures  int
	minSuccesses int
	cooldown     time.Duration
}

// NewBreaker creates a breaker in the closed state. maxFailures consecutive
// failures trip it open; after cooldown one probe is allowed, and minSuccesses
// consecutive probe successes close it again.
func NewBreaker(maxFailures, minSuccesses int, cooldown time.Duration) *Breaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if minSuccesses <= 0 {
		minSuccesses = 2
	}
	if cooldown <= 0 {
		cooldown = 60 * time.Second
	}
	return &Breaker{
		state:        BreakerClosed,
		maxFailures:  maxFailures,
		minSuccesses: minSuccesses,
		cooldown:     cooldown,
	}
}

// State returns the current state (safe for concurrent reads).
func (b *Breaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BreakerOpen && time.Since(b.lastFailure) >= b.cooldown {
		b.state = BreakerHalfOpen
		b.successes = 0
	}
	return b.state
}

// Execute runs fn through the breaker.
// Returns ErrBreakerOpen immediately when the breaker is open.
func (b *Breaker) Execute(fn func() error) error {
	if b.State() == BreakerOpen {
		return ErrBreakerOpen
	}

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.recordFailure()
		return err
	}
	b.recordSuccess()
	return nil
}

// recordFailure must be called under lock.
func (b *Breaker) recordFailure() {
	b.failures++
	b.lastFailure = time.Now()

	switch b.state {
	case BreakerClosed:
		if b.failures >= b.maxFailures {
			b.state = BreakerOpen
			b.successes = 0
		}
	case BreakerHalfOpen:
		// Probe failed — back to open
		b.state = BreakerOpen
		b.failures = 0
	}
}

// recordSuccess must be called under lock.
func (b *Breaker) recordSuccess() {
	switch b.state {
	case BreakerClosed:
		b.failures = 0
	case BreakerHalfOpen:
		b.successes++
		if b.successes >= b.minSuccesses {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	}
}
