package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// Breaker trips after a run of consecutive failures and lets a single
// probe through once the cooldown elapses. A probe success closes it, a
// probe failure restarts the cooldown.
type Breaker struct {
	mu sync.Mutex

	threshold int
	cooldown  time.Duration

	failures int
	openedAt time.Time
	probing  bool
	now      func() time.Time
}

func NewBreaker(threshold int, cooldown time.Duration) *Breaker {
	if threshold < 1 {
		threshold = 5
	}
	if cooldown <= 0 {
		cooldown = 15 * time.Second
	}
	return &Breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
	}
}

// Allow reports whether a call may proceed.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failures < b.threshold {
		return nil
	}
	if b.now().Sub(b.openedAt) < b.cooldown {
		return ErrCircuitOpen
	}
	if b.probing {
		return ErrCircuitOpen
	}
	b.probing = true
	return nil
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures = 0
	b.probing = false
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	b.probing = false
	if b.failures >= b.threshold {
		b.openedAt = b.now()
	}
}
