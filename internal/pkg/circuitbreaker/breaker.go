package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Execute while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Breaker trips after threshold consecutive failures and lets halfOpenMax
// trial calls through once timeout has elapsed.
type Breaker struct {
	mu          sync.Mutex
	state       State
	failures    int
	threshold   int
	timeout     time.Duration
	halfOpenMax int
	halfOpenCnt int
	lastFailure time.Time
	now         func() time.Time
}

// NewBreaker creates a new circuit breaker. A threshold below 1 is treated as 1.
func NewBreaker(threshold int, timeout time.Duration, halfOpenMax int) *Breaker {
	if threshold < 1 {
		threshold = 1
	}
	if halfOpenMax < 1 {
		halfOpenMax = 1
	}
	return &Breaker{
		state:       Closed,
		threshold:   threshold,
		timeout:     timeout,
		halfOpenMax: halfOpenMax,
		now:         time.Now,
	}
}

// Allow checks if the request should be allowed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Open:
		if b.now().Sub(b.lastFailure) <= b.timeout {
			return false
		}
		b.state = HalfOpen
		b.halfOpenCnt = 1
		return true
	case HalfOpen:
		if b.halfOpenCnt >= b.halfOpenMax {
			return false
		}
		b.halfOpenCnt++
		return true
	default:
		return true
	}
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state = Closed
	b.failures = 0
	b.halfOpenCnt = 0
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failures++
	b.lastFailure = b.now()

	switch b.state {
	case Closed:
		if b.failures >= b.threshold {
			b.state = Open
		}
	case HalfOpen:
		b.state = Open
	}
}

// Execute runs fn when the breaker allows it and records the outcome.
func (b *Breaker) Execute(fn func() error) error {
	if !b.Allow() {
		return ErrOpen
	}
	if err := fn(); err != nil {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return nil
}

// State returns the current circuit breaker state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
