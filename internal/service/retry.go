package service

import (
	"context"
	"errors"

	"study_cards/internal/middleware"
	"study_cards/internal/model"
)

// RetryOnConflict は fn が ErrConcurrencyConflict を返す間、最大 attempts 回まで呼び直す。
// それ以外のエラーとコンテキストのキャンセルは即座に返す
func RetryOnConflict[T any](ctx context.Context, attempts int, fn func(context.Context) (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}
	logger := middleware.GetLogger(ctx)

	var zero T
	var lastErr error
	for i := 1; i <= attempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, model.ErrConcurrencyConflict) {
			return zero, err
		}
		lastErr = err
		logger.Debug("Retrying after concurrency conflict", "attempt", i, "max_attempts", attempts)
	}
	return zero, lastErr
}
