package service

import (
	"context"
	"errors"
	"testing"

	"study_cards/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRetryOnConflict(t *testing.T) {
	conflict := model.NewAppError("CONCURRENT_UPDATE", "conflict", "", model.ErrConcurrencyConflict)
	other := errors.New("boom")

	tests := []struct {
		name      string
		attempts  int
		results   []error
		wantCalls int
		wantErr   error
	}{
		{name: "1回目で成功", attempts: 3, results: []error{nil}, wantCalls: 1},
		{name: "競合の後に成功", attempts: 3, results: []error{conflict, conflict, nil}, wantCalls: 3},
		{name: "競合が続けば諦める", attempts: 2, results: []error{conflict, conflict, nil}, wantCalls: 2, wantErr: model.ErrConcurrencyConflict},
		{name: "競合以外は再試行しない", attempts: 3, results: []error{other, nil}, wantCalls: 1, wantErr: other},
		{name: "attempts が0でも1回は呼ぶ", attempts: 0, results: []error{nil}, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			got, err := RetryOnConflict(context.Background(), tt.attempts, func(context.Context) (int, error) {
				err := tt.results[calls]
				calls++
				if err != nil {
					return 0, err
				}
				return 42, nil
			})
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, got)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 42, got)
		})
	}

	t.Run("キャンセル済みのコンテキストでは呼ばない", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		calls := 0
		_, err := RetryOnConflict(ctx, 3, func(context.Context) (int, error) {
			calls++
			return 0, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls)
	})
}
