package service

import (
	"context"
	"time"

	"study_cards/internal/clock"
	"study_cards/internal/middleware"
	"study_cards/internal/model"
	"study_cards/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate mockery --name RecommendationService --output ./mocks --outpkg mocks --case=underscore
type RecommendationService interface {
	Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*model.RecommendationResponse, error)
}

type recommendationService struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	recordRepo   repository.ReviewRecordRepository
	scorer       *PriorityScorer
	weights      PriorityWeights
	defaultLimit int
	clock        clock.Clock
}

func NewRecommendationService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	recordRepo repository.ReviewRecordRepository,
	weights PriorityWeights,
	defaultLimit int,
	clk clock.Clock,
) RecommendationService {
	return &recommendationService{
		db:           db,
		itemRepo:     itemRepo,
		recordRepo:   recordRepo,
		scorer:       NewPriorityScorer(weights),
		weights:      weights,
		defaultLimit: defaultLimit,
		clock:        clk,
	}
}

func (s *recommendationService) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*model.RecommendationResponse, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	if limit <= 0 {
		limit = s.defaultLimit
	}
	today := clock.Today(s.clock)

	var due []*model.ReviewRecord
	for _, kind := range itemPools {
		records, err := s.recordRepo.FindDue(ctx, s.db, userID, kind, today, nil)
		if err != nil {
			logger.Error("Failed to find due records", "kind", kind, "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "おすすめの取得に失敗しました。", "", err)
		}
		due = append(due, records...)
	}
	if len(due) == 0 {
		logger.Info("No due records to recommend")
		return []*model.RecommendationResponse{}, nil
	}

	signals, err := s.loadSignals(ctx, userID, today)
	if err != nil {
		logger.Error("Failed to load priority signals", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "おすすめの取得に失敗しました。", "", err)
	}

	ranked := s.scorer.Rank(due, signals, limit)

	refs := make([]model.ItemRef, 0, len(ranked))
	for _, sr := range ranked {
		if sr.Record.Item.Valid() {
			refs = append(refs, sr.Record.Item)
		}
	}
	items, err := s.itemRepo.FindItems(ctx, s.db, refs)
	if err != nil {
		logger.Error("Failed to resolve recommended items", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "おすすめの取得に失敗しました。", "", err)
	}

	responses := make([]*model.RecommendationResponse, 0, len(ranked))
	for _, sr := range ranked {
		resp := &model.RecommendationResponse{
			ItemID:         sr.Record.Item.ID,
			ItemKind:       sr.Record.Item.Kind,
			Score:          sr.Score,
			EaseFactor:     sr.Record.EaseFactor,
			NextReviewDate: model.FormatDate(sr.Record.NextReview()),
			LastCorrect:    sr.Record.LastCorrect,
		}
		// アイテムが見つからなくても推薦からは外さない
		if item, ok := items[sr.Record.Item]; ok {
			resp.CategoryCode = item.CategoryCode()
			resp.Question = item.Prompt().Question
		}
		responses = append(responses, resp)
	}

	logger.Info("Recommendations built", "count", len(responses), "due", len(due))
	return responses, nil
}

// loadSignals は3種類のシグナルを並行して取得する
func (s *recommendationService) loadSignals(ctx context.Context, userID uuid.UUID, today time.Time) (Signals, error) {
	var repeated, overdue, recentlyWrong []model.ItemRef

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		repeated, err = s.recordRepo.FindRepeatedMistakes(gctx, s.db, userID, s.weights.RepeatedMistakeThreshold)
		return err
	})
	g.Go(func() error {
		var err error
		overdue, err = s.recordRepo.FindOverdue(gctx, s.db, userID, today.AddDate(0, 0, -s.weights.OverdueDays))
		return err
	})
	g.Go(func() error {
		var err error
		recentlyWrong, err = s.recordRepo.FindRecentlyWrong(gctx, s.db, userID, s.weights.RecentWrongLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return Signals{}, err
	}
	return NewSignals(repeated, overdue, recentlyWrong), nil
}
