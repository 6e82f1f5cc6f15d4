// Package retry runs remote calls under a bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes an exponential schedule: the n-th retry waits
// BaseDelay * Multiplier^(n-1), capped at MaxDelay, for at most MaxAttempts calls.
type Policy struct {
	BaseDelay   time.Duration
	Multiplier  float64
	MaxAttempts int
	MaxDelay    time.Duration
}

// DefaultPolicy is base 1s, multiplier 2, three attempts.
func DefaultPolicy() Policy {
	return Policy{
		BaseDelay:   time.Second,
		Multiplier:  2,
		MaxAttempts: 3,
		MaxDelay:    30 * time.Second,
	}
}

// NewBackOff returns a fresh deterministic backoff that stops after MaxAttempts-1 retries.
func (p Policy) NewBackOff() backoff.BackOff {
	eb := &backoff.ExponentialBackOff{
		InitialInterval:     p.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          p.Multiplier,
		MaxInterval:         p.MaxDelay,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	if eb.MaxInterval <= 0 {
		eb.MaxInterval = backoff.DefaultMaxInterval
	}
	if eb.Multiplier < 1 {
		eb.Multiplier = 1
	}
	eb.Reset()

	retries := p.MaxAttempts - 1
	if retries < 0 {
		retries = 0
	}
	return backoff.WithMaxRetries(eb, uint64(retries))
}

// Delays lists the waits between attempts.
func (p Policy) Delays() []time.Duration {
	b := p.NewBackOff()
	var out []time.Duration
	for {
		d := b.NextBackOff()
		if d == backoff.Stop {
			return out
		}
		out = append(out, d)
	}
}

// Operation is one attempt; attempt starts at 1.
type Operation func(ctx context.Context, attempt int) error

// Notify observes a failed attempt that will be retried after delay.
type Notify func(err error, attempt int, delay time.Duration)

// Do runs op until it succeeds, returns an error retryable rejects, the policy
// is exhausted, or ctx is done. The last operation error is returned.
func Do(ctx context.Context, p Policy, op Operation, retryable func(error) bool, notify Notify) error {
	attempt := 0
	wrapped := func() error {
		attempt++
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		if retryable != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, d time.Duration) {
			notify(err, attempt, d)
		}
	}

	return backoff.RetryNotify(wrapped, backoff.WithContext(p.NewBackOff(), ctx), onRetry)
}

// Wait sleeps for d or until ctx is done.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
