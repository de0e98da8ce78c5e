package service

import (
	"context"
	"errors"
	"time"

	"study_cards/internal/clock"
	"study_cards/internal/middleware"
	"study_cards/internal/model"
	"study_cards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxHistoryLimit = 100

//go:generate mockery --name SessionService --output ./mocks --outpkg mocks --case=underscore
type SessionService interface {
	// EnsureActive は開いているセッションを返す。無ければ新しく開始する
	EnsureActive(ctx context.Context, userID uuid.UUID) (*model.StudySession, error)
	Current(ctx context.Context, userID uuid.UUID) (*model.StudySession, error)
	End(ctx context.Context, userID uuid.UUID) (*model.StudySession, error)
	Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.StudySession, error)
	History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.StudySession, error)
	SessionStats(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error)
	// EndIdle は idleFor より長く回答の無いセッションを全ユーザー分終了する
	EndIdle(ctx context.Context, idleFor time.Duration) (int64, error)
}

type sessionService struct {
	db          *gorm.DB
	sessionRepo repository.SessionRepository
	clock       clock.Clock
}

func NewSessionService(db *gorm.DB, sessionRepo repository.SessionRepository, clk clock.Clock) SessionService {
	return &sessionService{
		db:          db,
		sessionRepo: sessionRepo,
		clock:       clk,
	}
}

func (s *sessionService) EnsureActive(ctx context.Context, userID uuid.UUID) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var session *model.StudySession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.sessionRepo.FindActiveByUser(ctx, tx, userID)
		if err == nil {
			session = found
			return nil
		}
		if !errors.Is(err, model.ErrNotFound) {
			return err
		}

		session = &model.StudySession{
			ID:        uuid.New(),
			UserID:    userID,
			StartedAt: s.clock.Now().UTC(),
		}
		if err := s.sessionRepo.Create(ctx, tx, session); err != nil {
			return err
		}
		logger.Info("Study session started", "session_id", session.ID)
		return nil
	})
	if errors.Is(err, model.ErrConflict) {
		// 同時に開始された別のリクエストが先に作成した。失敗したトランザクションの外で読み直す
		logger.Warn("Open session created concurrently, reloading")
		session, err = s.sessionRepo.FindActiveByUser(ctx, s.db, userID)
	}
	if err != nil {
		logger.Error("Failed to ensure active session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの開始に失敗しました。", "", err)
	}
	return session, nil
}

func (s *sessionService) Current(ctx context.Context, userID uuid.UUID) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	session, err := s.sessionRepo.FindActiveByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "進行中の学習セッションはありません。", "", err)
		}
		logger.Error("Failed to find active session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの取得に失敗しました。", "", err)
	}
	return session, nil
}

func (s *sessionService) End(ctx context.Context, userID uuid.UUID) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	var session *model.StudySession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := s.sessionRepo.FindActiveByUser(ctx, tx, userID)
		if err != nil {
			return err
		}
		endedAt := s.clock.Now().UTC()
		if err := s.sessionRepo.End(ctx, tx, found.ID, endedAt); err != nil {
			return err
		}
		found.EndedAt = &endedAt
		session = found
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "進行中の学習セッションはありません。", "", err)
		}
		logger.Error("Failed to end session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの終了に失敗しました。", "", err)
	}

	logger.Info("Study session ended", "session_id", session.ID, "total_answered", session.TotalAnswered)
	return session, nil
}

func (s *sessionService) Get(ctx context.Context, userID, sessionID uuid.UUID) (*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "session_id", sessionID)

	session, err := s.sessionRepo.FindByID(ctx, s.db, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "学習セッションが見つかりません。", "session_id", err)
		}
		logger.Error("Failed to find session", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの取得に失敗しました。", "", err)
	}
	if session.UserID != userID {
		logger.Warn("Session requested by another user")
		return nil, model.NewAppError("FORBIDDEN", "この学習セッションにはアクセスできません。", "session_id", model.ErrOwnershipViolation)
	}
	return session, nil
}

func (s *sessionService) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.StudySession, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if limit <= 0 || limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	sessions, err := s.sessionRepo.FindHistory(ctx, s.db, userID, limit, offset)
	if err != nil {
		logger.Error("Failed to list sessions", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "学習履歴の取得に失敗しました。", "", err)
	}
	return sessions, nil
}

func (s *sessionService) SessionStats(ctx context.Context, userID, sessionID uuid.UUID) (*model.SessionResponse, error) {
	session, err := s.Get(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return model.NewSessionResponse(session), nil
}

func (s *sessionService) EndIdle(ctx context.Context, idleFor time.Duration) (int64, error) {
	logger := middleware.GetLogger(ctx)

	now := s.clock.Now().UTC()
	ended, err := s.sessionRepo.EndIdle(ctx, s.db, now.Add(-idleFor), now)
	if err != nil {
		logger.Error("Failed to end idle sessions", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "学習セッションの終了に失敗しました。", "", err)
	}
	if ended > 0 {
		logger.Info("Idle study sessions ended", "count", ended, "idle_for", idleFor)
	}
	return ended, nil
}
