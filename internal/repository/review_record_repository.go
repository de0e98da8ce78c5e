//go:generate mockery --name ReviewRecordRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"study_cards/internal/middleware"
	"study_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewRecordRepository は復習記録と回答履歴の永続化を担う
type ReviewRecordRepository interface {
	FindByUserAndItem(ctx context.Context, db *gorm.DB, userID uuid.UUID, ref model.ItemRef) (*model.ReviewRecord, error)
	// Create は新規作成。同じ (user, item) が既にあれば ErrConcurrencyConflict
	Create(ctx context.Context, tx *gorm.DB, record *model.ReviewRecord) error
	// UpdateWithVersion は version が expectedVersion の場合のみ更新し、record.Version を進める
	UpdateWithVersion(ctx context.Context, tx *gorm.DB, record *model.ReviewRecord, expectedVersion int64) error
	AppendLog(ctx context.Context, tx *gorm.DB, log *model.ReviewLog) error

	FindDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, today time.Time, categoryIDs []uuid.UUID) ([]*model.ReviewRecord, error)
	CountDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time) (int64, error)
	CountStudied(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error)

	// シグナル用クエリ
	FindRepeatedMistakes(ctx context.Context, db *gorm.DB, userID uuid.UUID, threshold int) ([]model.ItemRef, error)
	FindOverdue(ctx context.Context, db *gorm.DB, userID uuid.UUID, before time.Time) ([]model.ItemRef, error)
	FindRecentlyWrong(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]model.ItemRef, error)
}

type gormReviewRecordRepository struct{}

func NewGormReviewRecordRepository() ReviewRecordRepository {
	return &gormReviewRecordRepository{}
}

// itemRefRow は item_kind, item_id の2列だけを受け取る
type itemRefRow struct {
	ItemKind string
	ItemID   uuid.UUID
}

func toItemRefs(rows []itemRefRow) []model.ItemRef {
	refs := make([]model.ItemRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, model.ItemRef{Kind: model.ItemKind(row.ItemKind), ID: row.ItemID})
	}
	return refs
}

// itemTable は種類ごとのアイテムテーブル名を返す
func itemTable(kind model.ItemKind) (string, error) {
	switch kind {
	case model.ItemKindCatalog:
		return model.CatalogItem{}.TableName(), nil
	case model.ItemKindPersonal:
		return model.PersonalItem{}.TableName(), nil
	}
	return "", fmt.Errorf("%w: unknown item kind %q", model.ErrInvalidInput, kind)
}

func (r *gormReviewRecordRepository) FindByUserAndItem(ctx context.Context, db *gorm.DB, userID uuid.UUID, ref model.ItemRef) (*model.ReviewRecord, error) {
	var record model.ReviewRecord
	err := db.WithContext(ctx).
		Where("user_id = ? AND item_kind = ? AND item_id = ?", userID, ref.Kind, ref.ID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormReviewRecordRepository.FindByUserAndItem: %w", err)
	}
	return &record, nil
}

func (r *gormReviewRecordRepository) Create(ctx context.Context, tx *gorm.DB, record *model.ReviewRecord) error {
	logger := middleware.GetLogger(ctx)

	if err := tx.WithContext(ctx).Create(record).Error; err != nil {
		if isDuplicateKey(err) {
			logger.Warn("Duplicate review record on create", "user_id", record.UserID, "item", record.Item.String())
			return model.ErrConcurrencyConflict
		}
		logger.Error("Error creating review record in DB", "error", err, "item", record.Item.String())
		return fmt.Errorf("gormReviewRecordRepository.Create: %w", err)
	}
	return nil
}

func (r *gormReviewRecordRepository) UpdateWithVersion(ctx context.Context, tx *gorm.DB, record *model.ReviewRecord, expectedVersion int64) error {
	logger := middleware.GetLogger(ctx)

	result := tx.WithContext(ctx).Model(&model.ReviewRecord{}).
		Where("id = ? AND version = ?", record.ID, expectedVersion).
		Updates(map[string]interface{}{
			"ease_factor":      record.EaseFactor,
			"interval_days":    record.IntervalDays,
			"repetition_count": record.RepetitionCount,
			"next_review_date": record.NextReviewDate,
			"last_correct":     record.LastCorrect,
			"studied_at":       record.StudiedAt,
			"session_id":       record.SessionID,
			"version":          expectedVersion + 1,
		})
	if result.Error != nil {
		logger.Error("Error updating review record in DB", "error", result.Error, "record_id", record.ID)
		return fmt.Errorf("gormReviewRecordRepository.UpdateWithVersion: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		logger.Warn("Review record version mismatch", "record_id", record.ID, "expected_version", expectedVersion)
		return model.ErrConcurrencyConflict
	}
	record.Version = expectedVersion + 1
	return nil
}

func (r *gormReviewRecordRepository) AppendLog(ctx context.Context, tx *gorm.DB, log *model.ReviewLog) error {
	if err := tx.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("gormReviewRecordRepository.AppendLog: %w", err)
	}
	return nil
}

// FindDue は next_review_date <= today の記録を1つのアイテムプールから取得する。
// 削除済みアイテムの記録は含めない。categoryIDs が空ならカテゴリで絞り込まない
func (r *gormReviewRecordRepository) FindDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, today time.Time, categoryIDs []uuid.UUID) ([]*model.ReviewRecord, error) {
	table, err := itemTable(kind)
	if err != nil {
		return nil, err
	}

	var records []*model.ReviewRecord
	q := db.WithContext(ctx).
		Select("review_records.*").
		Joins("JOIN "+table+" items ON items.id = review_records.item_id AND items.deleted_at IS NULL").
		Where("review_records.user_id = ? AND review_records.item_kind = ? AND review_records.next_review_date <= ?", userID, kind, today)
	if len(categoryIDs) > 0 {
		q = q.Where("items.category_id IN ?", categoryIDs)
	}
	if err := q.Order("review_records.ease_factor ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("gormReviewRecordRepository.FindDue: %w", err)
	}
	return records, nil
}

// CountDue は期限到来の記録数。FindDue と同じく削除済みアイテムの記録は数えない
func (r *gormReviewRecordRepository) CountDue(ctx context.Context, db *gorm.DB, userID uuid.UUID, today time.Time) (int64, error) {
	count, err := r.countActive(ctx, db, userID, func(q *gorm.DB) *gorm.DB {
		return q.Where("review_records.next_review_date <= ?", today)
	})
	if err != nil {
		return 0, fmt.Errorf("gormReviewRecordRepository.CountDue: %w", err)
	}
	return count, nil
}

// CountStudied は学習済みアイテム数。(user, item) ごとに記録は1件なので有効なアイテムの記録数と等しい
func (r *gormReviewRecordRepository) CountStudied(ctx context.Context, db *gorm.DB, userID uuid.UUID) (int64, error) {
	count, err := r.countActive(ctx, db, userID, nil)
	if err != nil {
		return 0, fmt.Errorf("gormReviewRecordRepository.CountStudied: %w", err)
	}
	return count, nil
}

// countActive はプールごとにアイテム表を結合して数え、合計する
func (r *gormReviewRecordRepository) countActive(ctx context.Context, db *gorm.DB, userID uuid.UUID, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	var total int64
	for _, kind := range []model.ItemKind{model.ItemKindCatalog, model.ItemKindPersonal} {
		table, err := itemTable(kind)
		if err != nil {
			return 0, err
		}
		var count int64
		q := db.WithContext(ctx).Model(&model.ReviewRecord{}).
			Joins("JOIN "+table+" items ON items.id = review_records.item_id AND items.deleted_at IS NULL").
			Where("review_records.user_id = ? AND review_records.item_kind = ?", userID, kind)
		if scope != nil {
			q = scope(q)
		}
		if err := q.Count(&count).Error; err != nil {
			return 0, err
		}
		total += count
	}
	return total, nil
}

// FindRepeatedMistakes は不正解が threshold 回以上あるアイテムを返す
func (r *gormReviewRecordRepository) FindRepeatedMistakes(ctx context.Context, db *gorm.DB, userID uuid.UUID, threshold int) ([]model.ItemRef, error) {
	var rows []itemRefRow
	err := db.WithContext(ctx).Model(&model.ReviewLog{}).
		Select("item_kind, item_id").
		Where("user_id = ? AND is_correct = ?", userID, false).
		Group("item_kind, item_id").
		Having("COUNT(*) >= ?", threshold).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormReviewRecordRepository.FindRepeatedMistakes: %w", err)
	}
	return toItemRefs(rows), nil
}

// FindOverdue は next_review_date が before より前の記録のアイテムを返す
func (r *gormReviewRecordRepository) FindOverdue(ctx context.Context, db *gorm.DB, userID uuid.UUID, before time.Time) ([]model.ItemRef, error) {
	var rows []itemRefRow
	err := db.WithContext(ctx).Model(&model.ReviewRecord{}).
		Select("item_kind, item_id").
		Where("user_id = ? AND next_review_date < ?", userID, before).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormReviewRecordRepository.FindOverdue: %w", err)
	}
	return toItemRefs(rows), nil
}

// FindRecentlyWrong は直近 limit 件の不正解回答に含まれるアイテムを重複なしで返す
func (r *gormReviewRecordRepository) FindRecentlyWrong(ctx context.Context, db *gorm.DB, userID uuid.UUID, limit int) ([]model.ItemRef, error) {
	var rows []itemRefRow
	err := db.WithContext(ctx).Model(&model.ReviewLog{}).
		Select("item_kind, item_id").
		Where("user_id = ? AND is_correct = ?", userID, false).
		Order("studied_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("gormReviewRecordRepository.FindRecentlyWrong: %w", err)
	}

	seen := make(map[itemRefRow]struct{}, len(rows))
	unique := rows[:0]
	for _, row := range rows {
		if _, ok := seen[row]; ok {
			continue
		}
		seen[row] = struct{}{}
		unique = append(unique, row)
	}
	return toItemRefs(unique), nil
}
