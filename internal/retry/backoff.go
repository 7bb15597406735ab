package retry

import (
	"math"
	"math/rand"
	"time"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// ExponentialBackoff doubles the delay after every attempt, up to a cap,
// with optional jitter.
type ExponentialBackoff struct {
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
	maxAttempts  int

	// jitter is the relative spread applied to each delay (0.1 = +/-10%).
	jitter     float64
	jitterFunc func() float64
}

// BackoffOption configures an ExponentialBackoff.
type BackoffOption func(*ExponentialBackoff)

func WithInitialDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.initialDelay = d }
}

func WithMaxDelay(d time.Duration) BackoffOption {
	return func(b *ExponentialBackoff) { b.maxDelay = d }
}

func WithMultiplier(m float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.multiplier = m }
}

// WithJitter sets the jitter factor, clamped to [0, 1].
func WithJitter(j float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitter = math.Max(0, math.Min(1, j)) }
}

// WithJitterFunc replaces the random source; f must return values in [0, 1).
func WithJitterFunc(f func() float64) BackoffOption {
	return func(b *ExponentialBackoff) { b.jitterFunc = f }
}

// NewExponentialBackoff creates a backoff allowing maxAttempts retries
// (-1 = unlimited). Delays start at genmeta.DefaultRetryInitialDelay and are
// capped at genmeta.DefaultRetryMaxDelay unless overridden.
func NewExponentialBackoff(maxAttempts int, opts ...BackoffOption) *ExponentialBackoff {
	b := &ExponentialBackoff{
		initialDelay: genmeta.DefaultRetryInitialDelay,
		maxDelay:     genmeta.DefaultRetryMaxDelay,
		multiplier:   2.0,
		maxAttempts:  maxAttempts,
		jitter:       0.1,
		jitterFunc:   rand.Float64,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NextDelay returns initialDelay * multiplier^attempt, capped and jittered.
func (b *ExponentialBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	delay := float64(b.initialDelay) * math.Pow(b.multiplier, float64(attempt))
	if delay > float64(b.maxDelay) || math.IsInf(delay, 0) {
		delay = float64(b.maxDelay)
	}
	if b.jitter > 0 && b.jitterFunc != nil {
		delay *= 1 + b.jitter*(b.jitterFunc()*2-1)
	}
	return time.Duration(delay)
}

func (b *ExponentialBackoff) MaxAttempts() int {
	return b.maxAttempts
}

var _ genmeta.BackoffStrategy = (*ExponentialBackoff)(nil)
