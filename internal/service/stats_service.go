package service

import (
	"context"

	"study_cards/internal/clock"
	"study_cards/internal/middleware"
	"study_cards/internal/model"
	"study_cards/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate mockery --name StatsService --output ./mocks --outpkg mocks --case=underscore
type StatsService interface {
	CountDue(ctx context.Context, userID uuid.UUID) (int64, error)
	CountStudied(ctx context.Context, userID uuid.UUID) (int64, error)
	CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*model.CategoryStats, error)
	Summary(ctx context.Context, userID uuid.UUID) (*model.StudyStatsResponse, error)
}

type statsService struct {
	db               *gorm.DB
	recordRepo       repository.ReviewRecordRepository
	statsRepo        repository.CategoryStatsRepository
	masteryThreshold int
	clock            clock.Clock
}

func NewStatsService(
	db *gorm.DB,
	recordRepo repository.ReviewRecordRepository,
	statsRepo repository.CategoryStatsRepository,
	masteryThreshold int,
	clk clock.Clock,
) StatsService {
	return &statsService{
		db:               db,
		recordRepo:       recordRepo,
		statsRepo:        statsRepo,
		masteryThreshold: masteryThreshold,
		clock:            clk,
	}
}

func (s *statsService) CountDue(ctx context.Context, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	count, err := s.recordRepo.CountDue(ctx, s.db, userID, clock.Today(s.clock))
	if err != nil {
		logger.Error("Failed to count due records", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象数の取得に失敗しました。", "", err)
	}
	return count, nil
}

func (s *statsService) CountStudied(ctx context.Context, userID uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	count, err := s.recordRepo.CountStudied(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to count studied items", "error", err)
		return 0, model.NewAppError("INTERNAL_SERVER_ERROR", "学習済み数の取得に失敗しました。", "", err)
	}
	return count, nil
}

// countQuery はアイテムプール1つ分のカテゴリ別件数を返すクエリ
type countQuery func(ctx context.Context, kind model.ItemKind) ([]*model.CategoryCount, error)

// mergedCounts は両方のプールを集計して MergeCounts で合算する
func mergedCounts(ctx context.Context, query countQuery) ([]*model.CategoryCount, error) {
	catalog, err := query(ctx, model.ItemKindCatalog)
	if err != nil {
		return nil, err
	}
	personal, err := query(ctx, model.ItemKindPersonal)
	if err != nil {
		return nil, err
	}
	return MergeCounts(catalog, personal), nil
}

func (s *statsService) CategoryBreakdown(ctx context.Context, userID uuid.UUID) ([]*model.CategoryStats, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)
	today := clock.Today(s.clock)

	var studied, learning, due, mastered []*model.CategoryCount
	var accuracy []*model.CategoryAccuracy

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		studied, err = mergedCounts(gctx, func(ctx context.Context, kind model.ItemKind) ([]*model.CategoryCount, error) {
			return s.statsRepo.CountStudiedByCategory(ctx, s.db, userID, kind)
		})
		return err
	})
	g.Go(func() (err error) {
		learning, err = mergedCounts(gctx, func(ctx context.Context, kind model.ItemKind) ([]*model.CategoryCount, error) {
			return s.statsRepo.CountLearningByCategory(ctx, s.db, userID, kind)
		})
		return err
	})
	g.Go(func() (err error) {
		due, err = mergedCounts(gctx, func(ctx context.Context, kind model.ItemKind) ([]*model.CategoryCount, error) {
			return s.statsRepo.CountDueByCategory(ctx, s.db, userID, kind, today)
		})
		return err
	})
	g.Go(func() (err error) {
		mastered, err = mergedCounts(gctx, func(ctx context.Context, kind model.ItemKind) ([]*model.CategoryCount, error) {
			return s.statsRepo.CountMasteredByCategory(ctx, s.db, userID, kind, s.masteryThreshold)
		})
		return err
	})
	g.Go(func() error {
		catalog, err := s.statsRepo.AccuracyByCategory(gctx, s.db, userID, model.ItemKindCatalog)
		if err != nil {
			return err
		}
		personal, err := s.statsRepo.AccuracyByCategory(gctx, s.db, userID, model.ItemKindPersonal)
		if err != nil {
			return err
		}
		accuracy = MergeAccuracy(catalog, personal)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Failed to aggregate category stats", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリ別統計の取得に失敗しました。", "", err)
	}

	// 各集計に最初に現れた順でカテゴリを並べる
	var order []*model.CategoryStats
	byID := make(map[uuid.UUID]*model.CategoryStats)
	entry := func(id uuid.UUID, code string) *model.CategoryStats {
		if st, ok := byID[id]; ok {
			return st
		}
		st := &model.CategoryStats{CategoryID: id, CategoryCode: code}
		byID[id] = st
		order = append(order, st)
		return st
	}
	for _, c := range studied {
		entry(c.CategoryID, c.CategoryCode).Studied = c.Count
	}
	for _, c := range learning {
		entry(c.CategoryID, c.CategoryCode).Learning = c.Count
	}
	for _, c := range due {
		entry(c.CategoryID, c.CategoryCode).Due = c.Count
	}
	for _, c := range mastered {
		entry(c.CategoryID, c.CategoryCode).Mastered = c.Count
	}
	for _, a := range accuracy {
		st := entry(a.CategoryID, a.CategoryCode)
		st.Answered = a.Total
		st.Accuracy = model.Percent(a.Correct, a.Total)
	}

	if order == nil {
		order = []*model.CategoryStats{}
	}
	logger.Info("Category stats aggregated", "categories", len(order))
	return order, nil
}

func (s *statsService) Summary(ctx context.Context, userID uuid.UUID) (*model.StudyStatsResponse, error) {
	dueCount, err := s.CountDue(ctx, userID)
	if err != nil {
		return nil, err
	}
	studied, err := s.CountStudied(ctx, userID)
	if err != nil {
		return nil, err
	}
	categories, err := s.CategoryBreakdown(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.StudyStatsResponse{
		DueCount:     dueCount,
		StudiedCount: studied,
		Categories:   categories,
	}, nil
}
