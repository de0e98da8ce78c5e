package service

import (
	"context"
	"errors"
	"time"

	"study_cards/internal/clock"
	"study_cards/internal/middleware"
	"study_cards/internal/model"
	"study_cards/internal/repository"
	"study_cards/internal/sm2"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockery --name SchedulerService --output ./mocks --outpkg mocks --case=underscore
type SchedulerService interface {
	// SubmitAnswer は1件の回答を復習記録に反映する。競合時は再試行しない
	SubmitAnswer(ctx context.Context, userID uuid.UUID, ref model.ItemRef, sessionID *uuid.UUID, correct bool) (*model.AnswerOutcome, error)
}

type schedulerService struct {
	db               *gorm.DB
	itemRepo         repository.ItemRepository
	recordRepo       repository.ReviewRecordRepository
	sessionRepo      repository.SessionRepository
	params           sm2.Params
	masteryThreshold int
	clock            clock.Clock
}

func NewSchedulerService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	recordRepo repository.ReviewRecordRepository,
	sessionRepo repository.SessionRepository,
	params sm2.Params,
	masteryThreshold int,
	clk clock.Clock,
) SchedulerService {
	return &schedulerService{
		db:               db,
		itemRepo:         itemRepo,
		recordRepo:       recordRepo,
		sessionRepo:      sessionRepo,
		params:           params,
		masteryThreshold: masteryThreshold,
		clock:            clk,
	}
}

func (s *schedulerService) SubmitAnswer(ctx context.Context, userID uuid.UUID, ref model.ItemRef, sessionID *uuid.UUID, correct bool) (*model.AnswerOutcome, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "item", ref.String())

	if !ref.Valid() {
		return nil, model.NewAppError("INVALID_ITEM_REF", "アイテムの指定が不正です。", "item_id", model.ErrInvalidInput)
	}

	item, err := s.itemRepo.FindItem(ctx, s.db, ref)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Item not found for answer", "error", err)
			return nil, model.NewAppError("NOT_FOUND", "指定されたアイテムが見つかりません。", "item_id", err)
		}
		logger.Error("Failed to find item", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "アイテムの取得に失敗しました。", "", err)
	}
	// 所有者チェックはスケジューリング計算より前に行う
	if err := item.CheckOwner(userID); err != nil {
		logger.Warn("Answer rejected: item owned by another user")
		return nil, model.NewAppError("FORBIDDEN", "このアイテムにはアクセスできません。", "item_id", err)
	}
	if sessionID != nil {
		if err := s.checkSession(ctx, userID, *sessionID); err != nil {
			return nil, err
		}
	}

	now := s.clock.Now().UTC()
	today := clock.DateOf(now)

	var outcome *model.AnswerOutcome
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record, err := s.recordRepo.FindByUserAndItem(ctx, tx, userID, ref)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			return err
		}

		if errors.Is(err, model.ErrNotFound) {
			state := s.params.Initial(item.InitialEase(), correct)
			record = &model.ReviewRecord{
				ID:      uuid.New(),
				UserID:  userID,
				Item:    ref,
				Version: 1,
			}
			applyState(record, state, today, correct, now, sessionID)
			if err := s.recordRepo.Create(ctx, tx, record); err != nil {
				return err
			}
			logger.Debug("Review record created", "record_id", record.ID)
		} else {
			state := s.params.Apply(sm2.State{
				Ease:         record.EaseFactor,
				IntervalDays: record.IntervalDays,
				Repetition:   record.RepetitionCount,
			}, correct)
			expected := record.Version
			applyState(record, state, today, correct, now, sessionID)
			if err := s.recordRepo.UpdateWithVersion(ctx, tx, record, expected); err != nil {
				return err
			}
			logger.Debug("Review record updated", "record_id", record.ID, "version", record.Version)
		}

		if err := s.recordRepo.AppendLog(ctx, tx, &model.ReviewLog{
			ID:        uuid.New(),
			UserID:    userID,
			Item:      ref,
			SessionID: sessionID,
			IsCorrect: correct,
			StudiedAt: now,
		}); err != nil {
			return err
		}

		if sessionID != nil {
			if err := s.sessionRepo.RecordAnswer(ctx, tx, *sessionID, correct, now); err != nil {
				return err
			}
		}

		outcome = &model.AnswerOutcome{
			Record:       record,
			CategoryCode: item.CategoryCode(),
			Mastered:     correct && record.RepetitionCount >= s.masteryThreshold,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrConcurrencyConflict) {
			logger.Warn("Answer lost a concurrent update", "error", err)
			return nil, model.NewAppError("CONCURRENT_UPDATE", "同じアイテムへの回答が同時に処理されました。再試行してください。", "", err)
		}
		logger.Error("Failed to submit answer", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "回答の保存に失敗しました。", "", err)
	}

	logger.Info("Answer submitted",
		"is_correct", correct,
		"ease_factor", outcome.Record.EaseFactor,
		"interval_days", outcome.Record.IntervalDays,
		"repetition_count", outcome.Record.RepetitionCount)
	return outcome, nil
}

func (s *schedulerService) checkSession(ctx context.Context, userID, sessionID uuid.UUID) error {
	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "学習セッションが見つかりません。", "session_id", err)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの取得に失敗しました。", "", err)
	}
	if session.UserID != userID {
		return model.NewAppError("FORBIDDEN", "この学習セッションにはアクセスできません。", "session_id", model.ErrOwnershipViolation)
	}
	return nil
}

func applyState(record *model.ReviewRecord, state sm2.State, today time.Time, correct bool, now time.Time, sessionID *uuid.UUID) {
	record.EaseFactor = state.Ease
	record.IntervalDays = state.IntervalDays
	record.RepetitionCount = state.Repetition
	record.NextReviewDate = datatypes.Date(today.AddDate(0, 0, state.IntervalDays))
	record.LastCorrect = correct
	record.StudiedAt = now
	record.SessionID = sessionID
}
