package utils

import (
	"context"
	"errors"
	"math/rand"
	"time"
)

type Backoff struct {
	base       time.Duration
	maxRetries int
}

func NewBackoff(base time.Duration, maxRetries int) Backoff {
	return Backoff{base: base, maxRetries: maxRetries}
}

type permanentError struct{ err error }

func (p permanentError) Error() string { return p.err.Error() }
func (p permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error { return permanentError{err: err} }

// Do calls fn until it succeeds, returns a Permanent error, the retries
// run out or ctx is done. Waits grow exponentially with jitter.
func (b Backoff) Do(ctx context.Context, fn func(i int) error) error {
	var err error
	for i := 0; i <= b.maxRetries; i++ {
		err = fn(i)
		if err == nil {
			return nil
		}
		var p permanentError
		if errors.As(err, &p) {
			return p.err
		}
		if i == b.maxRetries {
			break
		}
		t := time.Duration(1<<i) * b.base
		if b.base > 0 {
			t += time.Duration(rand.Int63n(int64(b.base)))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(t):
		}
	}
	return err
}
