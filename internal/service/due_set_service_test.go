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
	"gorm.io/datatypes"
)

func dueRecord(userID uuid.UUID, ref model.ItemRef, ease float64, next time.Time) *model.ReviewRecord {
	return &model.ReviewRecord{
		ID:              uuid.New(),
		UserID:          userID,
		Item:            ref,
		EaseFactor:      ease,
		IntervalDays:    1,
		RepetitionCount: 2,
		NextReviewDate:  datatypes.Date(next),
		Version:         1,
	}
}

func Test_dueSetService_FindDueBatch(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	today := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	clk := clock.Fixed{T: today.Add(15 * time.Hour)}

	catA := &model.CatalogItem{ID: uuid.New(), EaseFactor: 2.5}
	catB := &model.CatalogItem{ID: uuid.New(), EaseFactor: 2.5}
	mine := &model.PersonalItem{ID: uuid.New(), OwnerID: userID, EaseFactor: 2.5}
	dueCatA := dueRecord(userID, catA.Ref(), 2.1, today)
	dueCatB := dueRecord(userID, catB.Ref(), 1.4, today.AddDate(0, 0, -3))
	dueMine := dueRecord(userID, mine.Ref(), 2.1, today)
	dueItems := map[model.ItemRef]model.ReviewableItem{catA.Ref(): catA, catB.Ref(): catB, mine.Ref(): mine}

	// 未学習: 個人5件、カタログ17件。同じイーズなら個人が先
	var unseenPersonal, unseenCatalog []model.ReviewableItem
	for _, e := range []float64{2.0, 2.1, 2.2, 2.3, 2.4} {
		unseenPersonal = append(unseenPersonal, &model.PersonalItem{ID: uuid.New(), OwnerID: userID, EaseFactor: e})
	}
	catalogEases := []float64{1.9, 2.0, 2.05, 2.15, 2.25, 2.35, 2.5, 2.5, 2.5, 2.6, 2.6, 2.7, 2.8, 2.9, 3.0, 3.0, 3.0}
	for _, e := range catalogEases {
		unseenCatalog = append(unseenCatalog, &model.CatalogItem{ID: uuid.New(), EaseFactor: e})
	}

	newService := func(itemRepo *mocks.ItemRepository, recordRepo *mocks.ReviewRecordRepository, categoryRepo *mocks.CategoryRepository) DueSetService {
		svc := NewDueSetService(nil, itemRepo, recordRepo, categoryRepo, 20, clk)
		svc.(*dueSetService).shuffle = func(int, func(i, j int)) {}
		return svc
	}

	t.Run("期限到来3件と未学習17件で20件になる", func(t *testing.T) {
		itemRepo := mocks.NewItemRepository(t)
		recordRepo := mocks.NewReviewRecordRepository(t)
		categoryRepo := mocks.NewCategoryRepository(t)

		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, today, []uuid.UUID(nil)).
			Return([]*model.ReviewRecord{dueMine}, nil).Once()
		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindCatalog, today, []uuid.UUID(nil)).
			Return([]*model.ReviewRecord{dueCatB, dueCatA}, nil).Once()
		itemRepo.On("FindItems", mock.Anything, mock.Anything, []model.ItemRef{catB.Ref(), mine.Ref(), catA.Ref()}).
			Return(dueItems, nil).Once()
		itemRepo.On("FindUnseen", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, []uuid.UUID(nil), 17).
			Return(unseenPersonal, nil).Once()
		itemRepo.On("FindUnseen", mock.Anything, mock.Anything, userID, model.ItemKindCatalog, []uuid.UUID(nil), 17).
			Return(unseenCatalog, nil).Once()

		batch, err := newService(itemRepo, recordRepo, categoryRepo).FindDueBatch(ctx, userID, "", 20)
		require.NoError(t, err)
		require.Len(t, batch, 20)

		// 期限到来分が先頭。イーズ昇順で、同点は個人アイテムが先
		assert.Equal(t, dueCatB, batch[0].Record)
		assert.Equal(t, dueMine, batch[1].Record)
		assert.Equal(t, dueCatA, batch[2].Record)

		for i := 3; i < len(batch); i++ {
			assert.Nil(t, batch[i].Record, "index %d should be unseen", i)
			if i > 3 {
				assert.LessOrEqual(t, batch[i-1].Ease(), batch[i].Ease())
			}
		}
		assert.Equal(t, unseenCatalog[0].Ref(), batch[3].Item.Ref()) // 1.9
		assert.Equal(t, unseenPersonal[0].Ref(), batch[4].Item.Ref()) // 2.0 個人
		assert.Equal(t, unseenCatalog[1].Ref(), batch[5].Item.Ref()) // 2.0 カタログ
	})

	t.Run("期限到来が target 以上なら切り詰めて未学習は探さない", func(t *testing.T) {
		itemRepo := mocks.NewItemRepository(t)
		recordRepo := mocks.NewReviewRecordRepository(t)
		categoryRepo := mocks.NewCategoryRepository(t)

		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, today, []uuid.UUID(nil)).
			Return([]*model.ReviewRecord{dueMine}, nil).Once()
		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindCatalog, today, []uuid.UUID(nil)).
			Return([]*model.ReviewRecord{dueCatB, dueCatA}, nil).Once()
		itemRepo.On("FindItems", mock.Anything, mock.Anything, []model.ItemRef{catB.Ref(), mine.Ref()}).
			Return(dueItems, nil).Once()

		batch, err := newService(itemRepo, recordRepo, categoryRepo).FindDueBatch(ctx, userID, "", 2)
		require.NoError(t, err)
		require.Len(t, batch, 2)
		assert.Equal(t, dueCatB, batch[0].Record)
		assert.Equal(t, dueMine, batch[1].Record)
	})

	t.Run("シャッフルは同じイーズの中だけで順番を入れ替える", func(t *testing.T) {
		itemRepo := mocks.NewItemRepository(t)
		recordRepo := mocks.NewReviewRecordRepository(t)
		categoryRepo := mocks.NewCategoryRepository(t)

		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, today, []uuid.UUID(nil)).
			Return([]*model.ReviewRecord{dueMine}, nil).Once()
		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindCatalog, today, []uuid.UUID(nil)).
			Return([]*model.ReviewRecord{dueCatB, dueCatA}, nil).Once()
		itemRepo.On("FindItems", mock.Anything, mock.Anything, []model.ItemRef{catB.Ref(), catA.Ref(), mine.Ref()}).
			Return(dueItems, nil).Once()

		svc := NewDueSetService(nil, itemRepo, recordRepo, categoryRepo, 20, clk)
		// 全体を逆順にする
		svc.(*dueSetService).shuffle = func(n int, swap func(i, j int)) {
			for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
				swap(i, j)
			}
		}

		batch, err := svc.FindDueBatch(ctx, userID, "", 3)
		require.NoError(t, err)
		require.Len(t, batch, 3)
		assert.Equal(t, dueCatB, batch[0].Record, "イーズが低いものは先頭のまま")
		assert.Equal(t, dueCatA, batch[1].Record, "同じイーズの2件は入れ替わる")
		assert.Equal(t, dueMine, batch[2].Record)
	})

	t.Run("カテゴリを子孫まで展開して絞り込む", func(t *testing.T) {
		itemRepo := mocks.NewItemRepository(t)
		recordRepo := mocks.NewReviewRecordRepository(t)
		categoryRepo := mocks.NewCategoryRepository(t)

		root := &model.Category{ID: uuid.New(), Code: "lang"}
		scope := []uuid.UUID{root.ID, uuid.New()}
		categoryRepo.On("FindByCode", mock.Anything, mock.Anything, "lang").Return(root, nil).Once()
		categoryRepo.On("FindSelfAndDescendantIDs", mock.Anything, mock.Anything, root.ID).Return(scope, nil).Once()
		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, mock.Anything, today, scope).
			Return([]*model.ReviewRecord{}, nil).Twice()
		itemRepo.On("FindItems", mock.Anything, mock.Anything, []model.ItemRef{}).
			Return(map[model.ItemRef]model.ReviewableItem{}, nil).Once()
		itemRepo.On("FindUnseen", mock.Anything, mock.Anything, userID, mock.Anything, scope, 20).
			Return([]model.ReviewableItem{}, nil).Twice()

		// target が0なら既定の件数
		batch, err := newService(itemRepo, recordRepo, categoryRepo).FindDueBatch(ctx, userID, "lang", 0)
		require.NoError(t, err)
		assert.Empty(t, batch)
	})

	t.Run("異常系: 未知のカテゴリは NotFound", func(t *testing.T) {
		categoryRepo := mocks.NewCategoryRepository(t)
		categoryRepo.On("FindByCode", mock.Anything, mock.Anything, "nope").Return(nil, model.ErrNotFound).Once()

		batch, err := newService(mocks.NewItemRepository(t), mocks.NewReviewRecordRepository(t), categoryRepo).
			FindDueBatch(ctx, userID, "nope", 10)
		assert.Nil(t, batch)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("異常系: DBエラー", func(t *testing.T) {
		recordRepo := mocks.NewReviewRecordRepository(t)
		recordRepo.On("FindDue", mock.Anything, mock.Anything, userID, model.ItemKindPersonal, today, []uuid.UUID(nil)).
			Return(nil, errors.New("db down")).Once()

		_, err := newService(mocks.NewItemRepository(t), recordRepo, mocks.NewCategoryRepository(t)).
			FindDueBatch(ctx, userID, "", 10)
		var appErr *model.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INTERNAL_SERVER_ERROR", appErr.Detail.Code)
	})
}
