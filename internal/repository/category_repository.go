//go:generate mockery --name CategoryRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"study_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*model.Category, error)
	// FindSelfAndDescendantIDs は root 自身と、その配下すべてのカテゴリIDを返す
	FindSelfAndDescendantIDs(ctx context.Context, db *gorm.DB, rootID uuid.UUID) ([]uuid.UUID, error)
	Create(ctx context.Context, tx *gorm.DB, category *model.Category) error
}

type gormCategoryRepository struct{}

func NewGormCategoryRepository() CategoryRepository {
	return &gormCategoryRepository{}
}

func (r *gormCategoryRepository) FindByCode(ctx context.Context, db *gorm.DB, code string) (*model.Category, error) {
	var category model.Category
	if err := db.WithContext(ctx).Where("code = ?", code).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormCategoryRepository.FindByCode: %w", err)
	}
	return &category, nil
}

// FindSelfAndDescendantIDs は階層を1段ずつ辿る。階層は浅い前提
func (r *gormCategoryRepository) FindSelfAndDescendantIDs(ctx context.Context, db *gorm.DB, rootID uuid.UUID) ([]uuid.UUID, error) {
	ids := []uuid.UUID{rootID}
	seen := map[uuid.UUID]struct{}{rootID: {}}
	frontier := []uuid.UUID{rootID}

	for len(frontier) > 0 {
		var children []uuid.UUID
		err := db.WithContext(ctx).Model(&model.Category{}).
			Where("parent_id IN ?", frontier).
			Order("code ASC").
			Pluck("id", &children).Error
		if err != nil {
			return nil, fmt.Errorf("gormCategoryRepository.FindSelfAndDescendantIDs: %w", err)
		}

		frontier = frontier[:0]
		for _, id := range children {
			if _, ok := seen[id]; ok {
				continue // 循環参照は無視する
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
			frontier = append(frontier, id)
		}
	}
	return ids, nil
}

func (r *gormCategoryRepository) Create(ctx context.Context, tx *gorm.DB, category *model.Category) error {
	if err := tx.WithContext(ctx).Create(category).Error; err != nil {
		if isDuplicateKey(err) {
			return model.ErrConflict
		}
		return fmt.Errorf("gormCategoryRepository.Create: %w", err)
	}
	return nil
}
