package service

import (
	"context"
	"errors"
	"math/rand"
	"sort"

	"study_cards/internal/clock"
	"study_cards/internal/middleware"
	"study_cards/internal/model"
	"study_cards/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 個人アイテムを先に並べる。同じイーズファクターなら個人アイテムが優先される
var itemPools = []model.ItemKind{model.ItemKindPersonal, model.ItemKindCatalog}

//go:generate mockery --name DueSetService --output ./mocks --outpkg mocks --case=underscore
type DueSetService interface {
	// FindDueBatch は今日学習すべきアイテムを最大 target 件返す。
	// categoryCode が空ならカテゴリで絞り込まない
	FindDueBatch(ctx context.Context, userID uuid.UUID, categoryCode string, target int) ([]*model.StudyItem, error)
}

type dueSetService struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	recordRepo   repository.ReviewRecordRepository
	categoryRepo repository.CategoryRepository
	defaultLimit int
	clock        clock.Clock
	shuffle      func(n int, swap func(i, j int))
}

func NewDueSetService(
	db *gorm.DB,
	itemRepo repository.ItemRepository,
	recordRepo repository.ReviewRecordRepository,
	categoryRepo repository.CategoryRepository,
	defaultLimit int,
	clk clock.Clock,
) DueSetService {
	return &dueSetService{
		db:           db,
		itemRepo:     itemRepo,
		recordRepo:   recordRepo,
		categoryRepo: categoryRepo,
		defaultLimit: defaultLimit,
		clock:        clk,
		shuffle:      rand.Shuffle,
	}
}

func (s *dueSetService) FindDueBatch(ctx context.Context, userID uuid.UUID, categoryCode string, target int) ([]*model.StudyItem, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "category", categoryCode)

	if target <= 0 {
		target = s.defaultLimit
	}

	categoryIDs, err := s.resolveCategoryScope(ctx, categoryCode)
	if err != nil {
		return nil, err
	}

	today := clock.Today(s.clock)
	var due []*model.ReviewRecord
	for _, kind := range itemPools {
		records, err := s.recordRepo.FindDue(ctx, s.db, userID, kind, today, categoryIDs)
		if err != nil {
			logger.Error("Failed to find due records", "kind", kind, "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
		}
		due = append(due, records...)
	}

	// 同じイーズファクターの中では順番をランダムにする
	s.shuffle(len(due), func(i, j int) { due[i], due[j] = due[j], due[i] })
	sort.SliceStable(due, func(i, j int) bool { return due[i].EaseFactor < due[j].EaseFactor })
	if len(due) > target {
		due = due[:target]
	}

	refs := make([]model.ItemRef, 0, len(due))
	for _, r := range due {
		refs = append(refs, r.Item)
	}
	items, err := s.itemRepo.FindItems(ctx, s.db, refs)
	if err != nil {
		logger.Error("Failed to resolve due items", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "復習対象の取得に失敗しました。", "", err)
	}

	batch := make([]*model.StudyItem, 0, target)
	for _, r := range due {
		item, ok := items[r.Item]
		if !ok {
			logger.Warn("Due record points to a missing item, skipping", "record_id", r.ID, "item", r.Item.String())
			continue
		}
		batch = append(batch, &model.StudyItem{Item: item, Record: r})
	}

	if remaining := target - len(batch); remaining > 0 {
		unseen, err := s.findUnseen(ctx, userID, categoryIDs, remaining)
		if err != nil {
			logger.Error("Failed to find unseen items", "error", err)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "新規アイテムの取得に失敗しました。", "", err)
		}
		for _, item := range unseen {
			batch = append(batch, &model.StudyItem{Item: item})
		}
	}

	logger.Info("Due batch built", "count", len(batch), "due", len(due), "target", target)
	return batch, nil
}

// findUnseen は未学習アイテムを両方のプールから集め、イーズファクター昇順で limit 件返す
func (s *dueSetService) findUnseen(ctx context.Context, userID uuid.UUID, categoryIDs []uuid.UUID, limit int) ([]model.ReviewableItem, error) {
	var unseen []model.ReviewableItem
	for _, kind := range itemPools {
		items, err := s.itemRepo.FindUnseen(ctx, s.db, userID, kind, categoryIDs, limit)
		if err != nil {
			return nil, err
		}
		unseen = append(unseen, items...)
	}
	sort.SliceStable(unseen, func(i, j int) bool { return unseen[i].InitialEase() < unseen[j].InitialEase() })
	if len(unseen) > limit {
		unseen = unseen[:limit]
	}
	return unseen, nil
}

// resolveCategoryScope はカテゴリコードを自身と子孫のIDに展開する。空なら nil
func (s *dueSetService) resolveCategoryScope(ctx context.Context, code string) ([]uuid.UUID, error) {
	if code == "" {
		return nil, nil
	}
	logger := middleware.GetLogger(ctx).With("category", code)

	category, err := s.categoryRepo.FindByCode(ctx, s.db, code)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Warn("Unknown category code")
			return nil, model.NewAppError("NOT_FOUND", "指定されたカテゴリが見つかりません。", "category", err)
		}
		logger.Error("Failed to find category", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの取得に失敗しました。", "", err)
	}
	ids, err := s.categoryRepo.FindSelfAndDescendantIDs(ctx, s.db, category.ID)
	if err != nil {
		logger.Error("Failed to expand category tree", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "カテゴリの取得に失敗しました。", "", err)
	}
	return ids, nil
}
