package resolver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"
)

type circuitBreakerCallback func(context.Context) (*http.Response, error)

type circuitBreakerState uint8

const (
	circuitBreakerStateClosed circuitBreakerState = iota
	circuitBreakerStateHalfOpened
	circuitBreakerStateOpened
)

// circuitBreaker blocks requests to a target which fails too often.
// State transitions are evaluated on each call, so there are no
// background timers. Cancellations of a caller context are not counted
// as failures.
type circuitBreaker struct {
	mutex sync.Mutex
	now   func() time.Time

	state         circuitBreakerState
	failuresCount uint32
	failuresSince time.Time
	openedAt      time.Time
	trialing      bool

	openThreshold        uint32
	halfOpenTimeout      time.Duration
	resetFailuresTimeout time.Duration
}

func (c *circuitBreaker) Do(ctx context.Context, callback circuitBreakerCallback) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trial, err := c.acquire()
	if err != nil {
		return nil, err
	}

	resp, err := callback(ctx)

	c.release(trial, err)

	return resp, err
}

// acquire returns true if the caller is the only one allowed to try
// a target in HALF_OPEN state.
func (c *circuitBreaker) acquire() (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()

	switch c.state {
	case circuitBreakerStateClosed:
		if c.failuresCount > 0 && now.Sub(c.failuresSince) >= c.resetFailuresTimeout {
			c.failuresCount = 0
		}

		return false, nil
	case circuitBreakerStateOpened:
		if now.Sub(c.openedAt) < c.halfOpenTimeout {
			return false, ErrCircuitBreakerOpened
		}

		c.state = circuitBreakerStateHalfOpened
		c.trialing = false
	}

	if c.trialing {
		return false, ErrCircuitBreakerOpened
	}

	c.trialing = true

	return true, nil
}

func (c *circuitBreaker) release(trial bool, err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	switch {
	case isCancelled(err):
		if trial {
			c.trialing = false
		}
	case err == nil:
		if trial || c.state == circuitBreakerStateClosed {
			c.close()
		}
	case trial:
		c.open()
	case c.state == circuitBreakerStateClosed:
		if c.failuresCount == 0 {
			c.failuresSince = c.now()
		}

		c.failuresCount++

		if c.failuresCount > c.openThreshold {
			c.open()
		}
	}
}

func (c *circuitBreaker) open() {
	c.state = circuitBreakerStateOpened
	c.openedAt = c.now()
	c.failuresCount = 0
	c.trialing = false
}

func (c *circuitBreaker) close() {
	c.state = circuitBreakerStateClosed
	c.failuresCount = 0
	c.trialing = false
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}

func newCircuitBreaker(openThreshold uint32,
	halfOpenTimeout, resetFailuresTimeout time.Duration) *circuitBreaker {
	return &circuitBreaker{
		now:                  time.Now,
		openThreshold:        openThreshold,
		halfOpenTimeout:      halfOpenTimeout,
		resetFailuresTimeout: resetFailuresTimeout,
	}
}
