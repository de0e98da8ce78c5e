package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"study_cards/internal/clock"
	"study_cards/internal/model"
	"study_cards/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func Test_statsService_Summary(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	clk := clock.Fixed{T: today.Add(20 * time.Hour)}

	cs := uuid.New()
	en := uuid.New()
	ja := uuid.New()
	count := func(id uuid.UUID, code string, n int64) *model.CategoryCount {
		return &model.CategoryCount{CategoryID: id, CategoryCode: code, Count: n}
	}
	none := []*model.CategoryCount{}

	records := mocks.NewReviewRecordRepository(t)
	stats := mocks.NewCategoryStatsRepository(t)

	records.On("CountDue", mock.Anything, mock.Anything, userID, today).Return(int64(4), nil).Once()
	records.On("CountStudied", mock.Anything, mock.Anything, userID).Return(int64(9), nil).Once()

	stats.On("CountStudiedByCategory", mock.Anything, mock.Anything, userID, model.ItemKindCatalog).
		Return([]*model.CategoryCount{count(cs, "CS", 5), count(en, "EN", 2)}, nil).Once()
	stats.On("CountStudiedByCategory", mock.Anything, mock.Anything, userID, model.ItemKindPersonal).
		Return([]*model.CategoryCount{count(cs, "CS", 2)}, nil).Once()
	stats.On("CountLearningByCategory", mock.Anything, mock.Anything, userID, model.ItemKindCatalog).
		Return([]*model.CategoryCount{count(en, "EN", 1)}, nil).Once()
	stats.On("CountLearningByCategory", mock.Anything, mock.Anything, userID, model.ItemKindPersonal).
		Return([]*model.CategoryCount{count(cs, "CS", 1)}, nil).Once()
	stats.On("CountDueByCategory", mock.Anything, mock.Anything, userID, model.ItemKindCatalog, today).
		Return([]*model.CategoryCount{count(cs, "CS", 3)}, nil).Once()
	stats.On("CountDueByCategory", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, today).
		Return([]*model.CategoryCount{count(cs, "CS", 1)}, nil).Once()
	stats.On("CountMasteredByCategory", mock.Anything, mock.Anything, userID, model.ItemKindCatalog, 5).
		Return(none, nil).Once()
	stats.On("CountMasteredByCategory", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, 5).
		Return([]*model.CategoryCount{count(cs, "CS", 1)}, nil).Once()
	stats.On("AccuracyByCategory", mock.Anything, mock.Anything, userID, model.ItemKindCatalog).
		Return([]*model.CategoryAccuracy{{CategoryID: cs, CategoryCode: "CS", Total: 2, Correct: 1}}, nil).Once()
	stats.On("AccuracyByCategory", mock.Anything, mock.Anything, userID, model.ItemKindPersonal).
		Return([]*model.CategoryAccuracy{
			{CategoryID: cs, CategoryCode: "CS", Total: 1, Correct: 1},
			{CategoryID: ja, CategoryCode: "JA", Total: 3, Correct: 0},
		}, nil).Once()

	svc := NewStatsService(nil, records, stats, 5, clk)
	got, err := svc.Summary(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.DueCount)
	assert.Equal(t, int64(9), got.StudiedCount)
	assert.Equal(t, []*model.CategoryStats{
		{CategoryID: cs, CategoryCode: "CS", Studied: 7, Learning: 1, Due: 4, Mastered: 1, Answered: 3, Accuracy: 66.7},
		{CategoryID: en, CategoryCode: "EN", Studied: 2, Learning: 1},
		{CategoryID: ja, CategoryCode: "JA", Answered: 3, Accuracy: 0},
	}, got.Categories)
}

func Test_statsService_Errors(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	clk := clock.Fixed{T: time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)}

	t.Run("CountDue のDBエラー", func(t *testing.T) {
		records := mocks.NewReviewRecordRepository(t)
		records.On("CountDue", mock.Anything, mock.Anything, userID, mock.Anything).Return(int64(0), errors.New("db down")).Once()

		_, err := NewStatsService(nil, records, mocks.NewCategoryStatsRepository(t), 5, clk).Summary(ctx, userID)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
	})

	t.Run("カテゴリ集計のDBエラー", func(t *testing.T) {
		stats := mocks.NewCategoryStatsRepository(t)
		stats.On("CountStudiedByCategory", mock.Anything, mock.Anything, userID, mock.Anything).Return(nil, errors.New("db down")).Maybe()
		stats.On("CountLearningByCategory", mock.Anything, mock.Anything, userID, mock.Anything).Return([]*model.CategoryCount{}, nil).Maybe()
		stats.On("CountDueByCategory", mock.Anything, mock.Anything, userID, mock.Anything, mock.Anything).Return([]*model.CategoryCount{}, nil).Maybe()
		stats.On("CountMasteredByCategory", mock.Anything, mock.Anything, userID, mock.Anything, 5).Return([]*model.CategoryCount{}, nil).Maybe()
		stats.On("AccuracyByCategory", mock.Anything, mock.Anything, userID, mock.Anything).Return([]*model.CategoryAccuracy{}, nil).Maybe()

		got, err := NewStatsService(nil, mocks.NewReviewRecordRepository(t), stats, 5, clk).CategoryBreakdown(ctx, userID)
		assert.Nil(t, got)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
	})
}
