//go:generate mockery --name CategoryStatsRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"fmt"
	"time"

	"study_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryStatsRepository はアイテムプール1つ分のカテゴリ別集計を返す。
// カタログと個人の合算はサービス層の MergeCounts が行う
type CategoryStatsRepository interface {
	CountStudiedByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind) ([]*model.CategoryCount, error)
	// CountLearningByCategory は回答回数が1〜2回の記録数
	CountLearningByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind) ([]*model.CategoryCount, error)
	CountDueByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, today time.Time) ([]*model.CategoryCount, error)
	CountMasteredByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, threshold int) ([]*model.CategoryCount, error)
	AccuracyByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind) ([]*model.CategoryAccuracy, error)
}

type gormCategoryStatsRepository struct{}

func NewGormCategoryStatsRepository() CategoryStatsRepository {
	return &gormCategoryStatsRepository{}
}

func (r *gormCategoryStatsRepository) countByCategory(ctx context.Context, db *gorm.DB, op string, userID uuid.UUID, kind model.ItemKind, cond string, args ...interface{}) ([]*model.CategoryCount, error) {
	table, err := itemTable(kind)
	if err != nil {
		return nil, err
	}

	q := db.WithContext(ctx).Table("review_records").
		Select("categories.id AS category_id, categories.code AS category_code, COUNT(*) AS count").
		Joins("JOIN "+table+" items ON items.id = review_records.item_id AND items.deleted_at IS NULL").
		Joins("JOIN categories ON categories.id = items.category_id").
		Where("review_records.user_id = ? AND review_records.item_kind = ?", userID, kind)
	if cond != "" {
		q = q.Where(cond, args...)
	}

	var rows []*model.CategoryCount
	if err := q.Group("categories.id, categories.code").Order("categories.code ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("gormCategoryStatsRepository.%s: %w", op, err)
	}
	return rows, nil
}

func (r *gormCategoryStatsRepository) CountStudiedByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind) ([]*model.CategoryCount, error) {
	return r.countByCategory(ctx, db, "CountStudiedByCategory", userID, kind, "")
}

func (r *gormCategoryStatsRepository) CountLearningByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind) ([]*model.CategoryCount, error) {
	return r.countByCategory(ctx, db, "CountLearningByCategory", userID, kind,
		"review_records.repetition_count BETWEEN ? AND ?", 1, 2)
}

func (r *gormCategoryStatsRepository) CountDueByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, today time.Time) ([]*model.CategoryCount, error) {
	return r.countByCategory(ctx, db, "CountDueByCategory", userID, kind,
		"review_records.next_review_date <= ?", today)
}

func (r *gormCategoryStatsRepository) CountMasteredByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, threshold int) ([]*model.CategoryCount, error) {
	return r.countByCategory(ctx, db, "CountMasteredByCategory", userID, kind,
		"review_records.repetition_count >= ?", threshold)
}

// AccuracyByCategory は回答履歴からカテゴリ別の回答数・正解数を集計する
func (r *gormCategoryStatsRepository) AccuracyByCategory(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind) ([]*model.CategoryAccuracy, error) {
	table, err := itemTable(kind)
	if err != nil {
		return nil, err
	}

	var rows []*model.CategoryAccuracy
	err = db.WithContext(ctx).Table("review_logs").
		Select("categories.id AS category_id, categories.code AS category_code, "+
			"COUNT(*) AS total, SUM(CASE WHEN review_logs.is_correct THEN 1 ELSE 0 END) AS correct").
		Joins("JOIN "+table+" items ON items.id = review_logs.item_id").
		Joins("JOIN categories ON categories.id = items.category_id").
		Where("review_logs.user_id = ? AND review_logs.item_kind = ?", userID, kind).
		Group("categories.id, categories.code").
		Order("categories.code ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormCategoryStatsRepository.AccuracyByCategory: %w", err)
	}
	return rows, nil
}
