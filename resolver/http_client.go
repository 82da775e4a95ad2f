package resolver

import (
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultCircuitBreakerHalfOpenTimeout is used if HTTPClientOpts has
	// no positive CircuitBreakerHalfOpenTimeout.
	DefaultCircuitBreakerHalfOpenTimeout = time.Minute

	// DefaultCircuitBreakerResetFailuresTimeout is used if HTTPClientOpts
	// has no positive CircuitBreakerResetFailuresTimeout.
	DefaultCircuitBreakerResetFailuresTimeout = 20 * time.Second
)

type httpClient struct {
	userAgent      string
	client         HTTPClient
	rateLimiter    *rate.Limiter
	circuitBreaker *circuitBreaker
}

func (h httpClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	req.Header.Set("User-Agent", h.userAgent)

	if err := h.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	if h.circuitBreaker == nil {
		return h.do(ctx, req)
	}

	return h.circuitBreaker.Do(ctx, func(ctx context.Context) (*http.Response, error) {
		return h.do(ctx, req)
	})
}

func (h httpClient) do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := h.client.Do(req.WithContext(ctx))
	if err != nil {
		if resp != nil {
			flushResponse(resp)
		}

		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		flushResponse(resp)

		return nil, &StatusError{
			Status:     resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	return resp, nil
}

// HTTPClientOpts is a set of parameters for NewHTTPClient.
//
// Please see https://pkg.go.dev/golang.org/x/time/rate to get a meaning
// of rate limiter parameters.
//
// CircuitBreakerOpenThreshold is a number of failures which are
// tolerated. If you pass 3 here, 4th failure switches circuit breaker
// into OPEN state and it blocks access to a target. 0 disables circuit
// breaker: every request is sent.
//
// CircuitBreakerResetFailuresTimeout is a period of failure counter
// reset while circuit breaker is CLOSED. If you pass 10s here and make
// 2 errors, then after 10 seconds this counter is going to be reset.
//
// CircuitBreakerHalfOpenTimeout is a time after which OPEN circuit
// breaker goes into HALF_OPEN state. Within this state we allow 1
// attempt. If this attempt fails, then it goes into OPEN state again.
// If succeed, it goes to CLOSED.
type HTTPClientOpts struct {
	UserAgent                          string
	RateLimitInterval                  time.Duration
	RateLimitBurst                     int
	CircuitBreakerOpenThreshold        uint32
	CircuitBreakerHalfOpenTimeout      time.Duration
	CircuitBreakerResetFailuresTimeout time.Duration
}

// NewHTTPClient wraps a client with rate limiter and optional circuit
// breaker, sets a user agent and treats non-2xx responses as errors.
func NewHTTPClient(client HTTPClient, opts HTTPClientOpts) HTTPClient {
	limit := rate.Inf
	if opts.RateLimitInterval > 0 {
		limit = rate.Every(opts.RateLimitInterval)
	}

	burst := opts.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	rv := httpClient{
		userAgent:   opts.UserAgent,
		client:      client,
		rateLimiter: rate.NewLimiter(limit, burst),
	}

	if opts.CircuitBreakerOpenThreshold == 0 {
		return rv
	}

	halfOpenTimeout := opts.CircuitBreakerHalfOpenTimeout
	if halfOpenTimeout <= 0 {
		halfOpenTimeout = DefaultCircuitBreakerHalfOpenTimeout
	}

	resetFailuresTimeout := opts.CircuitBreakerResetFailuresTimeout
	if resetFailuresTimeout <= 0 {
		resetFailuresTimeout = DefaultCircuitBreakerResetFailuresTimeout
	}

	rv.circuitBreaker = newCircuitBreaker(opts.CircuitBreakerOpenThreshold,
		halfOpenTimeout,
		resetFailuresTimeout)

	return rv
}

func flushResponse(resp *http.Response) {
	io.Copy(ioutil.Discard, resp.Body) // nolint: errcheck
	resp.Body.Close()
}
