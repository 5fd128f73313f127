// Package pacer spaces out consecutive remote calls.
package pacer

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Kinds accepted by New.
const (
	KindFixed       = "fixed"
	KindTokenBucket = "token-bucket"
)

// DefaultDelay is the pause between batches.
const DefaultDelay = 2 * time.Second

// Pacer blocks between batches. Wait returns early with ctx.Err() when the
// context is cancelled.
type Pacer interface {
	Wait(ctx context.Context) error
}

// New returns a pacer of the given kind. A zero or negative delay disables
// pacing.
func New(kind string, delay time.Duration) (Pacer, error) {
	if delay <= 0 {
		return Noop{}, nil
	}
	switch kind {
	case "", KindFixed:
		return NewFixed(delay), nil
	case KindTokenBucket:
		return NewTokenBucket(delay), nil
	default:
		return nil, fmt.Errorf("unknown pacing %q (want %s or %s)", kind, KindFixed, KindTokenBucket)
	}
}

// Noop never waits.
type Noop struct{}

func (Noop) Wait(ctx context.Context) error {
	return ctx.Err()
}

// Fixed sleeps for the same duration on every call.
type Fixed struct {
	delay time.Duration
}

func NewFixed(delay time.Duration) *Fixed {
	return &Fixed{delay: delay}
}

func (p *Fixed) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// TokenBucket allows one call per delay, measured from the previous call
// rather than from the end of the previous batch. Slow batches therefore
// do not pay the full delay again.
type TokenBucket struct {
	limiter *rate.Limiter
}

func NewTokenBucket(delay time.Duration) *TokenBucket {
	l := rate.NewLimiter(rate.Every(delay), 1)
	// Drain the initial token so the first Wait is paced too.
	l.Allow()
	return &TokenBucket{limiter: l}
}

func (p *TokenBucket) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
