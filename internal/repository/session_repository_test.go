package repository_test

import (
	"context"
	"testing"
	"time"

	"study_cards/internal/model"
	"study_cards/internal/repository"
	"study_cards/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormSessionRepository()

	userID := uuid.New()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	older := &model.StudySession{ID: uuid.New(), UserID: userID, StartedAt: base.Add(-2 * time.Hour)}
	current := &model.StudySession{ID: uuid.New(), UserID: userID, StartedAt: base}
	require.NoError(t, repo.Create(ctx, db, older))
	require.NoError(t, repo.End(ctx, db, older.ID, base.Add(-time.Hour)))
	require.NoError(t, repo.Create(ctx, db, current))

	t.Run("進行中のセッション", func(t *testing.T) {
		found, err := repo.FindActiveByUser(ctx, db, userID)
		require.NoError(t, err)
		assert.Equal(t, current.ID, found.ID)

		_, err = repo.FindActiveByUser(ctx, db, uuid.New())
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("回答数を加算する", func(t *testing.T) {
		require.NoError(t, repo.RecordAnswer(ctx, db, current.ID, true, base.Add(time.Minute)))
		require.NoError(t, repo.RecordAnswer(ctx, db, current.ID, false, base.Add(2*time.Minute)))

		found, err := repo.FindByID(ctx, db, current.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, found.TotalAnswered)
		assert.Equal(t, 1, found.CorrectAnswered)
		require.NotNil(t, found.LastAnsweredAt)
		assert.True(t, found.LastAnsweredAt.Equal(base.Add(2*time.Minute)))

		assert.ErrorIs(t, repo.RecordAnswer(ctx, db, uuid.New(), true, base), model.ErrNotFound)
	})

	t.Run("履歴は新しい順", func(t *testing.T) {
		sessions, err := repo.FindHistory(ctx, db, userID, 10, 0)
		require.NoError(t, err)
		require.Len(t, sessions, 2)
		assert.Equal(t, current.ID, sessions[0].ID)
		assert.Equal(t, older.ID, sessions[1].ID)

		sessions, err = repo.FindHistory(ctx, db, userID, 10, 1)
		require.NoError(t, err)
		require.Len(t, sessions, 1)
		assert.Equal(t, older.ID, sessions[0].ID)
	})

	t.Run("終了済みは再度終了できない", func(t *testing.T) {
		assert.ErrorIs(t, repo.End(ctx, db, older.ID, base), model.ErrNotFound)
	})
}

func TestSessionRepository_CreateSecondOpenSession(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormSessionRepository()

	userID := uuid.New()
	base := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	first := &model.StudySession{ID: uuid.New(), UserID: userID, StartedAt: base}
	require.NoError(t, repo.Create(ctx, db, first))

	second := &model.StudySession{ID: uuid.New(), UserID: userID, StartedAt: base.Add(time.Second)}
	assert.ErrorIs(t, repo.Create(ctx, db, second), model.ErrConflict)

	// 他のユーザーと、終了後の再開始は妨げない
	require.NoError(t, repo.Create(ctx, db, &model.StudySession{ID: uuid.New(), UserID: uuid.New(), StartedAt: base}))
	require.NoError(t, repo.End(ctx, db, first.ID, base.Add(time.Minute)))
	require.NoError(t, repo.Create(ctx, db, second))
}

func TestSessionRepository_EndIdle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormSessionRepository()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	recentAnswer := now.Add(-5 * time.Minute)
	staleAnswer := now.Add(-time.Hour)

	idle := &model.StudySession{ID: uuid.New(), UserID: uuid.New(), StartedAt: now.Add(-2 * time.Hour), LastAnsweredAt: &staleAnswer}
	active := &model.StudySession{ID: uuid.New(), UserID: uuid.New(), StartedAt: now.Add(-2 * time.Hour), LastAnsweredAt: &recentAnswer}
	fresh := &model.StudySession{ID: uuid.New(), UserID: uuid.New(), StartedAt: now.Add(-10 * time.Minute)}
	for _, s := range []*model.StudySession{idle, active, fresh} {
		require.NoError(t, repo.Create(ctx, db, s))
	}

	ended, err := repo.EndIdle(ctx, db, now.Add(-30*time.Minute), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), ended)

	found, err := repo.FindByID(ctx, db, idle.ID)
	require.NoError(t, err)
	assert.False(t, found.Active())

	for _, s := range []*model.StudySession{active, fresh} {
		found, err := repo.FindByID(ctx, db, s.ID)
		require.NoError(t, err)
		assert.True(t, found.Active())
	}
}
