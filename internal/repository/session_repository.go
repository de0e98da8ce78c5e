//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionRepository interface {
	// Create はセッションを保存する。同じユーザーの未終了セッションが既にあれば ErrConflict
	Create(ctx context.Context, tx *gorm.DB, session *model.StudySession) error
	FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.StudySession, error)
	// FindActiveByUser は終了していない最新のセッションを返す。無ければ ErrNotFound
	FindActiveByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.StudySession, error)
	FindHistory(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit, offset int) ([]*model.StudySession, error)
	// RecordAnswer は回答数カウンターを増やす
	RecordAnswer(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, correct bool, at time.Time) error
	// End は未終了のセッションを終了する。既に終了済みか存在しなければ ErrNotFound
	End(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, endedAt time.Time) error
	// EndIdle は idleSince 以降に回答が無い未終了セッションをすべて終了し、件数を返す
	EndIdle(ctx context.Context, db *gorm.DB, idleSince, endedAt time.Time) (int64, error)
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) Create(ctx context.Context, tx *gorm.DB, session *model.StudySession) error {
	if err := tx.WithContext(ctx).Create(session).Error; err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("gormSessionRepository.Create: %w", model.ErrConflict)
		}
		return fmt.Errorf("gormSessionRepository.Create: %w", err)
	}
	return nil
}

func (r *gormSessionRepository) FindByID(ctx context.Context, db *gorm.DB, sessionID uuid.UUID) (*model.StudySession, error) {
	var session model.StudySession
	if err := db.WithContext(ctx).First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSessionRepository.FindByID: %w", err)
	}
	return &session, nil
}

func (r *gormSessionRepository) FindActiveByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.StudySession, error) {
	var session model.StudySession
	err := db.WithContext(ctx).
		Where("user_id = ? AND ended_at IS NULL", userID).
		Order("started_at DESC").
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormSessionRepository.FindActiveByUser: %w", err)
	}
	return &session, nil
}

func (r *gormSessionRepository) FindHistory(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit, offset int) ([]*model.StudySession, error) {
	var sessions []*model.StudySession
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("started_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("gormSessionRepository.FindHistory: %w", err)
	}
	return sessions, nil
}

func (r *gormSessionRepository) RecordAnswer(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, correct bool, at time.Time) error {
	correctIncrement := 0
	if correct {
		correctIncrement = 1
	}
	result := tx.WithContext(ctx).Model(&model.StudySession{}).
		Where("id = ?", sessionID).
		UpdateColumns(map[string]interface{}{
			"total_answered":   gorm.Expr("total_answered + 1"),
			"correct_answered": gorm.Expr("correct_answered + ?", correctIncrement),
			"last_answered_at": at,
		})
	if result.Error != nil {
		return fmt.Errorf("gormSessionRepository.RecordAnswer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSessionRepository) End(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, endedAt time.Time) error {
	result := tx.WithContext(ctx).Model(&model.StudySession{}).
		Where("id = ? AND ended_at IS NULL", sessionID).
		Update("ended_at", endedAt)
	if result.Error != nil {
		return fmt.Errorf("gormSessionRepository.End: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormSessionRepository) EndIdle(ctx context.Context, db *gorm.DB, idleSince, endedAt time.Time) (int64, error) {
	result := db.WithContext(ctx).Model(&model.StudySession{}).
		Where("ended_at IS NULL AND COALESCE(last_answered_at, started_at) < ?", idleSince).
		Update("ended_at", endedAt)
	if result.Error != nil {
		return 0, fmt.Errorf("gormSessionRepository.EndIdle: %w", result.Error)
	}
	return result.RowsAffected, nil
}
