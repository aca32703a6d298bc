// Package backoff provides retry with exponential backoff.
package backoff

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

// Policy holds retry strategy configuration.
type Policy struct {
	// Attempts is the total number of tries, including the first one.
	Attempts int
	// Initial is the delay before the first retry.
	Initial time.Duration
	// Max caps the delay between retries.
	Max time.Duration
	// Factor is the exponential growth factor.
	Factor float64
	// Transient lists error substrings worth retrying.
	// Empty means every error is retried.
	Transient []string
}

// Default returns a general-purpose retry policy.
func Default() Policy {
	return Policy{
		Attempts: 5,
		Initial:  1 * time.Second,
		Max:      30 * time.Second,
		Factor:   2.0,
	}
}

// Database returns a policy tuned for database connection establishment.
func Database() Policy {
	p := Default()
	p.Transient = []string{
		"connection refused",
		"connection reset",
		"i/o timeout",
		"dial tcp",
		"too many connections",
		"the database system is starting up",
		"network is unreachable",
	}
	return p
}

// Retryable reports whether the error matches the policy's transient list.
func (p Policy) Retryable(err error) bool {
	if err == nil {
		return false
	}
	if len(p.Transient) == 0 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, pattern := range p.Transient {
		if strings.Contains(msg, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// delay computes the wait before retry number attempt (0-based), capped at
// Max with ±10% jitter to avoid synchronized reconnect storms.
func (p Policy) delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := float64(p.Initial) * math.Pow(p.Factor, float64(attempt))
	if d > float64(p.Max) {
		d = float64(p.Max)
	}
	//nolint:gosec // jitter needs no cryptographic randomness
	jitter := d * 0.1 * (rand.Float64()*2 - 1)
	return time.Duration(d + jitter)
}

// Do runs fn until it succeeds, the policy is exhausted, or ctx is done.
func Do(ctx context.Context, p Policy, fn func() error) error {
	_, err := Result(ctx, p, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// Result runs fn until it succeeds, the policy is exhausted, or ctx is done,
// returning fn's value.
func Result[T any](ctx context.Context, p Policy, fn func() (T, error)) (T, error) {
	var zero T
	if p.Attempts <= 0 {
		return zero, fmt.Errorf("backoff: Attempts must be greater than 0")
	}

	var lastErr error
	for attempt := 0; attempt < p.Attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		value, err := fn()
		if err == nil {
			return value, nil
		}
		lastErr = err

		if !p.Retryable(err) {
			return zero, err
		}
		if attempt == p.Attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(p.delay(attempt)):
		}
	}

	return zero, lastErr
}
