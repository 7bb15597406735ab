package retry

import (
	"context"
	"time"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// Executor runs operations, retrying transient failures.
type Executor struct {
	classifier genmeta.ErrorClassifier
	strategy   genmeta.BackoffStrategy
	logger     genmeta.Logger
}

// NewExecutor creates an Executor. Panics if classifier or strategy is nil.
func NewExecutor(classifier genmeta.ErrorClassifier, strategy genmeta.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{classifier: classifier, strategy: strategy}
}

// NewDefaultExecutor returns the executor used by the record store.
func NewDefaultExecutor() *Executor {
	return NewExecutor(NewPostgresClassifier(), NewExponentialBackoff(genmeta.DefaultRetryMaxAttempts))
}

// WithLogger returns a copy of e that reports retries to logger.
func (e *Executor) WithLogger(logger genmeta.Logger) *Executor {
	clone := *e
	clone.logger = logger
	return &clone
}

// Execute runs op until it succeeds, fails fatally, the strategy runs out of
// attempts or ctx is done. The last error is returned.
func (e *Executor) Execute(ctx context.Context, op func(ctx context.Context) error) error {
	err := op(ctx)
	maxAttempts := e.strategy.MaxAttempts()

	for attempt := 0; err != nil && e.classifier.IsTransient(err); attempt++ {
		if maxAttempts >= 0 && attempt >= maxAttempts {
			break
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		delay := e.strategy.NextDelay(attempt)
		if e.logger != nil {
			e.logger.Verbose("transient error, retry %d in %s: %v", attempt+1, delay, err)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		err = op(ctx)
	}
	return err
}

// Do is Execute for operations that return a value.
func Do[T any](ctx context.Context, e *Executor, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := e.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
