package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func TestBreakerTripsAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewBreaker(2, time.Minute, 1)
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		if err := b.Execute(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("attempt %d: expected boom, got %v", i, err)
		}
	}
	if b.State() != Open {
		t.Fatalf("expected open breaker, got %s", b.State())
	}

	called := false
	err := b.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
	if called {
		t.Fatalf("fn must not run while open")
	}
}

func TestBreakerHalfOpenRecovers(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(1, time.Second, 1)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	if b.Allow() {
		t.Fatalf("expected rejection before timeout")
	}

	now = now.Add(2 * time.Second)
	if !b.Allow() {
		t.Fatalf("expected trial call after timeout")
	}
	if b.State() != HalfOpen {
		t.Fatalf("expected half-open, got %s", b.State())
	}
	if b.Allow() {
		t.Fatalf("expected only one trial call")
	}

	b.RecordSuccess()
	if b.State() != Closed {
		t.Fatalf("expected closed after success, got %s", b.State())
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewBreaker(1, time.Second, 1)
	b.now = func() time.Time { return now }

	b.RecordFailure()
	now = now.Add(2 * time.Second)
	if !b.Allow() {
		t.Fatalf("expected trial call")
	}
	b.RecordFailure()
	if b.State() != Open {
		t.Fatalf("expected open, got %s", b.State())
	}
}
