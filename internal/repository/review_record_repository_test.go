package repository_test

import (
	"context"
	"testing"

	"study_cards/internal/model"
	"study_cards/internal/repository"
	"study_cards/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestReviewRecordRepository_UpdateWithVersion(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormReviewRecordRepository()

	userID := uuid.New()
	cat := testutil.CreateCategory(t, db, "math", nil)
	item := testutil.CreateCatalogItem(t, db, cat.ID, "1+1", 2.5)
	today := testutil.Date(2026, 10, 19)
	record := testutil.CreateRecord(t, db, userID, item.Ref(), 2.5, 1, today)

	t.Run("正常系: バージョン一致で更新される", func(t *testing.T) {
		record.EaseFactor = 2.6
		record.IntervalDays = 6
		record.RepetitionCount = 2
		record.NextReviewDate = datatypes.Date(today.AddDate(0, 0, 6))

		err := repo.UpdateWithVersion(ctx, db, record, 1)
		require.NoError(t, err)
		assert.Equal(t, int64(2), record.Version)

		stored, err := repo.FindByUserAndItem(ctx, db, userID, item.Ref())
		require.NoError(t, err)
		assert.Equal(t, int64(2), stored.Version)
		assert.Equal(t, 6, stored.IntervalDays)
		assert.InDelta(t, 2.6, stored.EaseFactor, 1e-9)
		assert.True(t, stored.NextReview().Equal(today.AddDate(0, 0, 6)))
	})

	t.Run("異常系: 古いバージョンでは競合エラー", func(t *testing.T) {
		stale := *record
		err := repo.UpdateWithVersion(ctx, db, &stale, 1)
		assert.ErrorIs(t, err, model.ErrConcurrencyConflict)
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

func TestReviewRecordRepository_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormReviewRecordRepository()

	userID := uuid.New()
	cat := testutil.CreateCategory(t, db, "math", nil)
	item := testutil.CreateCatalogItem(t, db, cat.ID, "1+1", 2.5)
	today := testutil.Date(2026, 10, 19)
	testutil.CreateRecord(t, db, userID, item.Ref(), 2.5, 1, today)

	dup := &model.ReviewRecord{
		ID:              uuid.New(),
		UserID:          userID,
		Item:            item.Ref(),
		EaseFactor:      2.6,
		IntervalDays:    1,
		RepetitionCount: 1,
		NextReviewDate:  datatypes.Date(today),
		StudiedAt:       today,
		Version:         1,
	}
	err := repo.Create(ctx, db, dup)
	assert.ErrorIs(t, err, model.ErrConcurrencyConflict)

	// 別ユーザーなら同じアイテムでも作成できる
	dup.ID = uuid.New()
	dup.UserID = uuid.New()
	assert.NoError(t, repo.Create(ctx, db, dup))
}

func TestReviewRecordRepository_FindByUserAndItem_NotFound(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormReviewRecordRepository()

	_, err := repo.FindByUserAndItem(context.Background(), db, uuid.New(), model.CatalogRef(uuid.New()))
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestReviewRecordRepository_FindDue(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormReviewRecordRepository()

	userID := uuid.New()
	today := testutil.Date(2026, 10, 19)
	root := testutil.CreateCategory(t, db, "lang", nil)
	leaf := testutil.CreateCategory(t, db, "lang-en", &root.ID)
	other := testutil.CreateCategory(t, db, "math", nil)

	dueLow := testutil.CreateCatalogItem(t, db, leaf.ID, "low", 2.5)
	dueHigh := testutil.CreateCatalogItem(t, db, other.ID, "high", 2.5)
	future := testutil.CreateCatalogItem(t, db, leaf.ID, "future", 2.5)
	deleted := testutil.CreateCatalogItem(t, db, leaf.ID, "deleted", 2.5)
	personal := testutil.CreatePersonalItem(t, db, userID, leaf.ID, "mine", 2.5)

	testutil.CreateRecord(t, db, userID, dueLow.Ref(), 1.5, 3, today)
	testutil.CreateRecord(t, db, userID, dueHigh.Ref(), 2.8, 3, today.AddDate(0, 0, -2))
	testutil.CreateRecord(t, db, userID, future.Ref(), 1.3, 3, today.AddDate(0, 0, 1))
	testutil.CreateRecord(t, db, userID, deleted.Ref(), 1.3, 3, today)
	testutil.CreateRecord(t, db, userID, personal.Ref(), 2.0, 1, today)
	testutil.CreateRecord(t, db, uuid.New(), dueLow.Ref(), 1.3, 1, today)
	require.NoError(t, db.Delete(deleted).Error)

	t.Run("カタログの期限到来分をイーズ昇順で返す", func(t *testing.T) {
		records, err := repo.FindDue(ctx, db, userID, model.ItemKindCatalog, today, nil)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, dueLow.ID, records[0].Item.ID)
		assert.Equal(t, dueHigh.ID, records[1].Item.ID)
	})

	t.Run("カテゴリで絞り込む", func(t *testing.T) {
		records, err := repo.FindDue(ctx, db, userID, model.ItemKindCatalog, today, []uuid.UUID{root.ID, leaf.ID})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, dueLow.ID, records[0].Item.ID)
	})

	t.Run("個人アイテムのプール", func(t *testing.T) {
		records, err := repo.FindDue(ctx, db, userID, model.ItemKindPersonal, today, nil)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, model.PersonalRef(personal.ID), records[0].Item)
	})

	t.Run("件数", func(t *testing.T) {
		due, err := repo.CountDue(ctx, db, userID, today)
		require.NoError(t, err)
		assert.Equal(t, int64(3), due) // 削除済みアイテムの記録は数えない

		studied, err := repo.CountStudied(ctx, db, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), studied)
	})
}

func TestReviewRecordRepository_Signals(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormReviewRecordRepository()

	userID := uuid.New()
	today := testutil.Date(2026, 10, 19)
	cat := testutil.CreateCategory(t, db, "math", nil)
	a := testutil.CreateCatalogItem(t, db, cat.ID, "a", 2.5)
	b := testutil.CreateCatalogItem(t, db, cat.ID, "b", 2.5)
	p := testutil.CreatePersonalItem(t, db, userID, cat.ID, "p", 2.5)

	// a は3回、b は2回間違えている
	for i := 0; i < 3; i++ {
		testutil.CreateLog(t, db, userID, a.Ref(), false, today.Add(-time24h(i+10)))
	}
	for i := 0; i < 2; i++ {
		testutil.CreateLog(t, db, userID, b.Ref(), false, today.Add(-time24h(i+1)))
	}
	testutil.CreateLog(t, db, userID, p.Ref(), true, today)
	testutil.CreateLog(t, db, uuid.New(), b.Ref(), false, today)

	t.Run("繰り返しの間違い", func(t *testing.T) {
		refs, err := repo.FindRepeatedMistakes(ctx, db, userID, 3)
		require.NoError(t, err)
		assert.Equal(t, []model.ItemRef{a.Ref()}, refs)
	})

	t.Run("直近の不正解は新しい順で重複なし", func(t *testing.T) {
		refs, err := repo.FindRecentlyWrong(ctx, db, userID, 20)
		require.NoError(t, err)
		assert.Equal(t, []model.ItemRef{b.Ref(), a.Ref()}, refs)

		refs, err = repo.FindRecentlyWrong(ctx, db, userID, 2)
		require.NoError(t, err)
		assert.Equal(t, []model.ItemRef{b.Ref()}, refs)
	})

	t.Run("期限超過は基準日より前のみ", func(t *testing.T) {
		testutil.CreateRecord(t, db, userID, a.Ref(), 2.5, 3, today.AddDate(0, 0, -8))
		testutil.CreateRecord(t, db, userID, b.Ref(), 2.5, 3, today.AddDate(0, 0, -7))

		refs, err := repo.FindOverdue(ctx, db, userID, today.AddDate(0, 0, -7))
		require.NoError(t, err)
		assert.Equal(t, []model.ItemRef{a.Ref()}, refs)
	})
}

func TestReviewRecordRepository_CountsSkipDeletedItems(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewSQLiteDB(t)
	repo := repository.NewGormReviewRecordRepository()
	statsRepo := repository.NewGormCategoryStatsRepository()

	userID := uuid.New()
	today := testutil.Date(2026, 10, 19)
	cat := testutil.CreateCategory(t, db, "math", nil)
	live := testutil.CreateCatalogItem(t, db, cat.ID, "live", 2.5)
	gone := testutil.CreateCatalogItem(t, db, cat.ID, "gone", 2.5)
	mine := testutil.CreatePersonalItem(t, db, userID, cat.ID, "mine", 2.5)
	mineGone := testutil.CreatePersonalItem(t, db, userID, cat.ID, "mine-gone", 2.5)

	testutil.CreateRecord(t, db, userID, live.Ref(), 2.5, 1, today)
	testutil.CreateRecord(t, db, userID, gone.Ref(), 2.5, 1, today)
	testutil.CreateRecord(t, db, userID, mine.Ref(), 2.5, 1, today.AddDate(0, 0, 3))
	testutil.CreateRecord(t, db, userID, mineGone.Ref(), 2.5, 1, today)
	require.NoError(t, db.Delete(gone).Error)
	require.NoError(t, db.Delete(mineGone).Error)

	queue, err := repo.FindDue(ctx, db, userID, model.ItemKindCatalog, today, nil)
	require.NoError(t, err)
	due, err := repo.CountDue(ctx, db, userID, today)
	require.NoError(t, err)
	assert.Equal(t, int64(len(queue)), due)
	assert.Equal(t, int64(1), due)

	byCategory, err := statsRepo.CountDueByCategory(ctx, db, userID, model.ItemKindCatalog, today)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, due, byCategory[0].Count)

	studied, err := repo.CountStudied(ctx, db, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), studied) // live と mine
}
