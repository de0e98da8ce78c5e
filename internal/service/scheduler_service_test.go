package service

import (
	"context"
	"testing"
	"time"

	"study_cards/internal/clock"
	"study_cards/internal/model"
	"study_cards/internal/repository"
	"study_cards/internal/sm2"
	"study_cards/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// staleReadRepo は次の1回だけ古い読み取り結果を返す。
// 別リクエストのコミット前に読んだ状態を再現する
type staleReadRepo struct {
	repository.ReviewRecordRepository
	staleOnce   *model.ReviewRecord
	missingOnce bool
}

func (r *staleReadRepo) FindByUserAndItem(ctx context.Context, db *gorm.DB, userID uuid.UUID, ref model.ItemRef) (*model.ReviewRecord, error) {
	if r.missingOnce {
		r.missingOnce = false
		return nil, model.ErrNotFound
	}
	if r.staleOnce != nil {
		copied := *r.staleOnce
		r.staleOnce = nil
		return &copied, nil
	}
	return r.ReviewRecordRepository.FindByUserAndItem(ctx, db, userID, ref)
}

type schedulerFixture struct {
	db         *gorm.DB
	clock      *clock.Fixed
	recordRepo repository.ReviewRecordRepository
	userID     uuid.UUID
	category   *model.Category
}

func newSchedulerFixture(t *testing.T) *schedulerFixture {
	db := testutil.NewSQLiteDB(t)
	return &schedulerFixture{
		db:         db,
		clock:      &clock.Fixed{T: time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)},
		recordRepo: repository.NewGormReviewRecordRepository(),
		userID:     uuid.New(),
		category:   testutil.CreateCategory(t, db, "math", nil),
	}
}

func (f *schedulerFixture) service(recordRepo repository.ReviewRecordRepository) SchedulerService {
	return NewSchedulerService(f.db,
		repository.NewGormItemRepository(),
		recordRepo,
		repository.NewGormSessionRepository(),
		sm2.DefaultParams(), 5, f.clock)
}

func (f *schedulerFixture) countLogs(t *testing.T, ref model.ItemRef) int64 {
	var n int64
	require.NoError(t, f.db.Model(&model.ReviewLog{}).
		Where("user_id = ? AND item_kind = ? AND item_id = ?", f.userID, ref.Kind, ref.ID).
		Count(&n).Error)
	return n
}

func Test_schedulerService_SubmitAnswer_Scenario(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)
	svc := f.service(f.recordRepo)
	item := testutil.CreateCatalogItem(t, f.db, f.category.ID, "1+1", 2.5)
	day1 := clock.Today(f.clock)

	// 1回目: 正解で新規作成
	out, err := svc.SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Record.IntervalDays)
	assert.Equal(t, 1, out.Record.RepetitionCount)
	assert.InDelta(t, 2.6, out.Record.EaseFactor, 1e-9)
	assert.True(t, out.Record.NextReview().Equal(day1.AddDate(0, 0, 1)))
	assert.Equal(t, int64(1), out.Record.Version)
	assert.Equal(t, "math", out.CategoryCode)
	assert.False(t, out.Mastered)

	// 2回目: 正解で間隔6日
	f.clock.T = f.clock.T.AddDate(0, 0, 1)
	out, err = svc.SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, 6, out.Record.IntervalDays)
	assert.Equal(t, 2, out.Record.RepetitionCount)
	assert.InDelta(t, 2.7, out.Record.EaseFactor, 1e-9)
	assert.True(t, out.Record.NextReview().Equal(day1.AddDate(0, 0, 7)))
	assert.Equal(t, int64(2), out.Record.Version)

	// 3回目: 不正解で間隔リセット、回数は増える
	f.clock.T = f.clock.T.AddDate(0, 0, 6)
	out, err = svc.SubmitAnswer(ctx, f.userID, item.Ref(), nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Record.IntervalDays)
	assert.Equal(t, 3, out.Record.RepetitionCount)
	assert.InDelta(t, 2.38, out.Record.EaseFactor, 1e-9)
	assert.GreaterOrEqual(t, out.Record.EaseFactor, 1.3)
	assert.False(t, out.Record.LastCorrect)

	stored, err := f.recordRepo.FindByUserAndItem(ctx, f.db, f.userID, item.Ref())
	require.NoError(t, err)
	assert.Equal(t, 3, stored.RepetitionCount)
	assert.Equal(t, int64(3), stored.Version)
	assert.Equal(t, int64(3), f.countLogs(t, item.Ref()))
}

func Test_schedulerService_SubmitAnswer_Mastered(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)
	svc := f.service(f.recordRepo)
	item := testutil.CreateCatalogItem(t, f.db, f.category.ID, "1+1", 2.5)
	testutil.CreateRecord(t, f.db, f.userID, item.Ref(), 2.5, 4, clock.Today(f.clock))

	out, err := svc.SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
	require.NoError(t, err)
	assert.Equal(t, 5, out.Record.RepetitionCount)
	assert.True(t, out.Mastered)
}

func Test_schedulerService_SubmitAnswer_Errors(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)
	svc := f.service(f.recordRepo)
	theirs := testutil.CreatePersonalItem(t, f.db, uuid.New(), f.category.ID, "secret", 2.5)

	otherSession := &model.StudySession{ID: uuid.New(), UserID: uuid.New(), StartedAt: f.clock.T}
	require.NoError(t, f.db.Create(otherSession).Error)
	catalog := testutil.CreateCatalogItem(t, f.db, f.category.ID, "1+1", 2.5)
	missingSession := uuid.New()

	tests := []struct {
		name      string
		ref       model.ItemRef
		sessionID *uuid.UUID
		wantErr   error
		wantCode  string
	}{
		{name: "異常系: 他人の個人アイテム", ref: theirs.Ref(), wantErr: model.ErrOwnershipViolation, wantCode: "FORBIDDEN"},
		{name: "異常系: 存在しないアイテム", ref: model.CatalogRef(uuid.New()), wantErr: model.ErrNotFound, wantCode: "NOT_FOUND"},
		{name: "異常系: 参照が不正", ref: model.ItemRef{Kind: model.ItemKindCatalog}, wantErr: model.ErrInvalidInput, wantCode: "INVALID_ITEM_REF"},
		{name: "異常系: 他人のセッション", ref: catalog.Ref(), sessionID: &otherSession.ID, wantErr: model.ErrOwnershipViolation, wantCode: "FORBIDDEN"},
		{name: "異常系: 存在しないセッション", ref: catalog.Ref(), sessionID: &missingSession, wantErr: model.ErrNotFound, wantCode: "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.SubmitAnswer(ctx, f.userID, tt.ref, tt.sessionID, true)
			assert.Nil(t, out)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			var appErr *model.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.wantCode, appErr.Detail.Code)
		})
	}

	// 拒否された回答は何も書き込まない
	var records, logs int64
	require.NoError(t, f.db.Model(&model.ReviewRecord{}).Count(&records).Error)
	require.NoError(t, f.db.Model(&model.ReviewLog{}).Count(&logs).Error)
	assert.Zero(t, records)
	assert.Zero(t, logs)
}

func Test_schedulerService_SubmitAnswer_Session(t *testing.T) {
	ctx := context.Background()
	f := newSchedulerFixture(t)
	svc := f.service(f.recordRepo)
	a := testutil.CreateCatalogItem(t, f.db, f.category.ID, "a", 2.5)
	b := testutil.CreatePersonalItem(t, f.db, f.userID, f.category.ID, "b", 2.5)

	session := &model.StudySession{ID: uuid.New(), UserID: f.userID, StartedAt: f.clock.T}
	require.NoError(t, f.db.Create(session).Error)

	_, err := svc.SubmitAnswer(ctx, f.userID, a.Ref(), &session.ID, true)
	require.NoError(t, err)
	out, err := svc.SubmitAnswer(ctx, f.userID, b.Ref(), &session.ID, false)
	require.NoError(t, err)
	require.NotNil(t, out.Record.SessionID)
	assert.Equal(t, session.ID, *out.Record.SessionID)

	var stored model.StudySession
	require.NoError(t, f.db.First(&stored, "id = ?", session.ID).Error)
	assert.Equal(t, 2, stored.TotalAnswered)
	assert.Equal(t, 1, stored.CorrectAnswered)
}

func Test_schedulerService_SubmitAnswer_Concurrency(t *testing.T) {
	ctx := context.Background()

	t.Run("古い記録での更新は競合になり、再試行でコミット済みの状態から進む", func(t *testing.T) {
		f := newSchedulerFixture(t)
		item := testutil.CreateCatalogItem(t, f.db, f.category.ID, "1+1", 2.5)

		first, err := f.service(f.recordRepo).SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
		require.NoError(t, err)
		seed := *first.Record

		// 別リクエストが先にコミットする
		_, err = f.service(f.recordRepo).SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
		require.NoError(t, err)

		stale := &staleReadRepo{ReviewRecordRepository: f.recordRepo, staleOnce: &seed}
		svc := f.service(stale)

		_, err = svc.SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
		assert.ErrorIs(t, err, model.ErrConcurrencyConflict)

		stale.staleOnce = &seed
		out, err := RetryOnConflict(ctx, 3, func(ctx context.Context) (*model.AnswerOutcome, error) {
			return svc.SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
		})
		require.NoError(t, err)
		assert.Equal(t, 3, out.Record.RepetitionCount)
		assert.Equal(t, int64(3), out.Record.Version)
		// 競合した回答の履歴はロールバックされる
		assert.Equal(t, int64(3), f.countLogs(t, item.Ref()))
	})

	t.Run("初回作成の重複は競合になり、再試行で既存の記録を更新する", func(t *testing.T) {
		f := newSchedulerFixture(t)
		item := testutil.CreateCatalogItem(t, f.db, f.category.ID, "1+1", 2.5)

		_, err := f.service(f.recordRepo).SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
		require.NoError(t, err)

		stale := &staleReadRepo{ReviewRecordRepository: f.recordRepo, missingOnce: true}
		out, err := RetryOnConflict(ctx, 3, func(ctx context.Context) (*model.AnswerOutcome, error) {
			return f.service(stale).SubmitAnswer(ctx, f.userID, item.Ref(), nil, true)
		})
		require.NoError(t, err)
		assert.Equal(t, 2, out.Record.RepetitionCount)
		assert.Equal(t, 6, out.Record.IntervalDays)
		assert.Equal(t, int64(2), f.countLogs(t, item.Ref()))
	})
}
