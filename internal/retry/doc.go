// Package retry retries record store operations that fail for transient
// reasons, with exponential backoff between attempts.
//
// # Example Usage
//
//	executor := retry.NewExecutor(
//	    retry.NewPostgresClassifier(),
//	    retry.NewExponentialBackoff(genmeta.DefaultRetryMaxAttempts),
//	)
//
//	n, err := retry.Do(ctx, executor, func(ctx context.Context) (int64, error) {
//	    return countRecords(ctx)
//	})
//
// The PostgresClassifier treats connection loss, resource exhaustion,
// operator intervention and serialization conflicts as transient. Constraint
// violations, syntax errors and context cancellation are fatal.
//
// Executor instances are safe for concurrent use.
package retry
