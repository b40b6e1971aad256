package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b := NewBreaker(3, time.Minute)

	for i := 0; i < 3; i++ {
		if err := b.Allow(); err != nil {
			t.Fatalf("call %d: expected closed breaker, got %v", i, err)
		}
		b.RecordFailure()
	}

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
}

func TestBreaker_ProbesAfterCooldownAndCloses(t *testing.T) {
	b := NewBreaker(1, time.Minute)
	current := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return current }

	if err := b.Allow(); err != nil {
		t.Fatalf("expected closed breaker, got %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open breaker, got %v", err)
	}

	current = current.Add(2 * time.Minute)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe allowed after cooldown, got %v", err)
	}
	// Only one probe at a time.
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected second probe rejected, got %v", err)
	}

	b.RecordSuccess()
	if err := b.Allow(); err != nil {
		t.Fatalf("expected breaker closed after probe success, got %v", err)
	}
}

func TestBreaker_ProbeFailureRestartsCooldown(t *testing.T) {
	b := NewBreaker(1, time.Minute)
	current := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return current }

	b.RecordFailure()
	current = current.Add(2 * time.Minute)

	if err := b.Allow(); err != nil {
		t.Fatalf("expected probe allowed, got %v", err)
	}
	b.RecordFailure()

	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected breaker re-opened, got %v", err)
	}
}
