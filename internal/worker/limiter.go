package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter paces batch project processing so a large input directory does not
// saturate the store.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter admitting perSecond starts with the given
// burst. A non-positive rate means unlimited.
func NewLimiter(perSecond float64, burst int) *Limiter {
	if perSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

// Wait blocks until a start is admitted or the context is canceled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a start is admitted right now, without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
