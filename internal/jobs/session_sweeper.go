// Package jobs はリクエストの外で定期実行する処理
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"study_cards/internal/middleware"
	"study_cards/internal/service"

	"github.com/go-co-op/gocron"
)

// SessionSweeper は一定時間回答の無い学習セッションを定期的に終了させる
type SessionSweeper struct {
	scheduler *gocron.Scheduler
	sessions  service.SessionService
	idleFor   time.Duration
	interval  time.Duration
	logger    *slog.Logger
}

func NewSessionSweeper(sessions service.SessionService, idleFor, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	return &SessionSweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		idleFor:   idleFor,
		interval:  interval,
		logger:    logger.With("job", "session_sweeper"),
	}
}

// Start はジョブを登録し、バックグラウンドで実行を開始する
func (s *SessionSweeper) Start() error {
	if s.interval <= 0 || s.idleFor <= 0 {
		return fmt.Errorf("session sweeper: interval and idle timeout must be positive (interval=%s, idle=%s)", s.interval, s.idleFor)
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.Sweep); err != nil {
		return fmt.Errorf("session sweeper: schedule job: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("Session sweeper started", "interval", s.interval, "idle_timeout", s.idleFor)
	return nil
}

func (s *SessionSweeper) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Session sweeper stopped")
}

// Sweep は1回分の掃除を行う。エラーはログに残して次回に任せる
func (s *SessionSweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)
	defer cancel()
	ctx = middleware.WithLogger(ctx, s.logger)

	ended, err := s.sessions.EndIdle(ctx, s.idleFor)
	if err != nil {
		s.logger.Error("Failed to sweep idle sessions", "error", err)
		return
	}
	s.logger.Debug("Idle session sweep finished", "ended", ended)
}
