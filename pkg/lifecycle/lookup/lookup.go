package lookup

import (
	"context"
	"log/slog"
)

// Strategy is one way of resolving a set of records. Strategies are
// named so a skipped or failing strategy can be attributed in logs.
type Strategy[T any] struct {
	Name string
	Run  func(ctx context.Context) ([]T, error)
}

// First runs strategies in order and returns the first non-empty
// result. A strategy that fails is logged and skipped; a strategy that
// succeeds with an empty result simply yields to the next one. When
// every strategy comes back empty the result is empty with a nil
// error; when every strategy fails, the last error is returned.
func First[T any](ctx context.Context, logger *slog.Logger, strategies []Strategy[T]) ([]T, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var lastErr error
	failures := 0

	for _, strategy := range strategies {
		results, err := strategy.Run(ctx)
		if err != nil {
			logger.Warn("lookup strategy failed, trying next",
				"strategy", strategy.Name,
				"error", err,
			)
			lastErr = err
			failures++
			continue
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	if failures == len(strategies) && lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}
