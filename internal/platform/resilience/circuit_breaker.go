package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// CircuitBreaker guards calls to an outbound dependency. It opens after
// FailureThreshold consecutive failures, waits OpenTimeout, then admits up to
// HalfOpenMaxReq probes; that many successes close it, any failure reopens it.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     CircuitState
	failures  int
	openedAt  time.Time
	inFlight  int
	successes int
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.withDefaults(),
		now:   time.Now,
		state: CircuitStateClosed,
	}
}

// Execute runs fn when the breaker admits it. isFailure decides which errors
// count against the breaker; nil treats every error as a failure.
func (b *CircuitBreaker) Execute(fn func() error, isFailure func(error) bool) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && (isFailure == nil || isFailure(err)) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

func (b *CircuitBreaker) Allow() error {
	var err error
	b.update(func() {
		if b.state == CircuitStateOpen && b.cooledDown() {
			b.moveTo(CircuitStateHalfOpen)
		}
		switch b.state {
		case CircuitStateOpen:
			err = ErrCircuitOpen
		case CircuitStateHalfOpen:
			if b.inFlight >= b.cfg.HalfOpenMaxReq {
				err = ErrCircuitOpen
				return
			}
			b.inFlight++
		}
	})
	return err
}

func (b *CircuitBreaker) RecordSuccess() {
	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures = 0
		case CircuitStateHalfOpen:
			if b.inFlight > 0 {
				b.inFlight--
			}
			b.successes++
			if b.successes >= b.cfg.HalfOpenMaxReq && b.inFlight == 0 {
				b.moveTo(CircuitStateClosed)
			}
		}
	})
}

func (b *CircuitBreaker) RecordFailure() {
	b.update(func() {
		switch b.state {
		case CircuitStateClosed:
			b.failures++
			if b.failures >= b.cfg.FailureThreshold {
				b.moveTo(CircuitStateOpen)
			}
		case CircuitStateHalfOpen:
			b.moveTo(CircuitStateOpen)
		case CircuitStateOpen:
			b.openedAt = b.now()
		}
	})
}

// State reports half-open once the open timeout elapsed, even before the next Allow.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.cooledDown() {
		return CircuitStateHalfOpen
	}
	return b.state
}

// update applies fn under the lock and reports a transition afterwards.
func (b *CircuitBreaker) update(fn func()) {
	b.mu.Lock()
	from := b.state
	fn()
	to := b.state
	b.mu.Unlock()

	if from != to && b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(from, to)
	}
}

func (b *CircuitBreaker) cooledDown() bool {
	return b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout
}

func (b *CircuitBreaker) moveTo(state CircuitState) {
	b.state = state
	b.inFlight = 0
	b.successes = 0
	switch state {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}
