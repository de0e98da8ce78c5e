//go:generate mockery --name ItemRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"study_cards/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemRepository はカタログ・個人アイテムの読み書きを担う
type ItemRepository interface {
	// FindItem は ref が指すアイテムを Category 付きで返す。無ければ ErrNotFound
	FindItem(ctx context.Context, db *gorm.DB, ref model.ItemRef) (model.ReviewableItem, error)
	// FindItems は refs のうち存在するものだけを返す
	FindItems(ctx context.Context, db *gorm.DB, refs []model.ItemRef) (map[model.ItemRef]model.ReviewableItem, error)
	// FindUnseen は userID がまだ一度も回答していないアイテムを ease_factor の昇順で返す。
	// 個人アイテムは userID の所有物のみ
	FindUnseen(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, categoryIDs []uuid.UUID, limit int) ([]model.ReviewableItem, error)
	CreateCatalogItems(ctx context.Context, tx *gorm.DB, items []*model.CatalogItem) error
	CreatePersonalItem(ctx context.Context, tx *gorm.DB, item *model.PersonalItem) error
}

type gormItemRepository struct{}

func NewGormItemRepository() ItemRepository {
	return &gormItemRepository{}
}

func (r *gormItemRepository) FindItem(ctx context.Context, db *gorm.DB, ref model.ItemRef) (model.ReviewableItem, error) {
	var (
		item model.ReviewableItem
		err  error
	)
	q := db.WithContext(ctx).Preload("Category")
	switch ref.Kind {
	case model.ItemKindCatalog:
		var c model.CatalogItem
		err = q.First(&c, "id = ?", ref.ID).Error
		item = &c
	case model.ItemKindPersonal:
		var p model.PersonalItem
		err = q.First(&p, "id = ?", ref.ID).Error
		item = &p
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", model.ErrInvalidInput, ref.Kind)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("gormItemRepository.FindItem: %w", err)
	}
	return item, nil
}

func (r *gormItemRepository) FindItems(ctx context.Context, db *gorm.DB, refs []model.ItemRef) (map[model.ItemRef]model.ReviewableItem, error) {
	var catalogIDs, personalIDs []uuid.UUID
	for _, ref := range refs {
		switch ref.Kind {
		case model.ItemKindCatalog:
			catalogIDs = append(catalogIDs, ref.ID)
		case model.ItemKindPersonal:
			personalIDs = append(personalIDs, ref.ID)
		}
	}

	found := make(map[model.ItemRef]model.ReviewableItem, len(refs))
	if len(catalogIDs) > 0 {
		var items []*model.CatalogItem
		if err := db.WithContext(ctx).Preload("Category").Where("id IN ?", catalogIDs).Find(&items).Error; err != nil {
			return nil, fmt.Errorf("gormItemRepository.FindItems(catalog): %w", err)
		}
		for _, it := range items {
			found[it.Ref()] = it
		}
	}
	if len(personalIDs) > 0 {
		var items []*model.PersonalItem
		if err := db.WithContext(ctx).Preload("Category").Where("id IN ?", personalIDs).Find(&items).Error; err != nil {
			return nil, fmt.Errorf("gormItemRepository.FindItems(personal): %w", err)
		}
		for _, it := range items {
			found[it.Ref()] = it
		}
	}
	return found, nil
}

func (r *gormItemRepository) FindUnseen(ctx context.Context, db *gorm.DB, userID uuid.UUID, kind model.ItemKind, categoryIDs []uuid.UUID, limit int) ([]model.ReviewableItem, error) {
	if limit <= 0 {
		return []model.ReviewableItem{}, nil
	}
	table, err := itemTable(kind)
	if err != nil {
		return nil, err
	}

	q := db.WithContext(ctx).Preload("Category").
		Where("NOT EXISTS (SELECT 1 FROM review_records rr WHERE rr.user_id = ? AND rr.item_kind = ? AND rr.item_id = "+table+".id)", userID, kind)
	if kind == model.ItemKindPersonal {
		q = q.Where(table+".owner_id = ?", userID)
	}
	if len(categoryIDs) > 0 {
		q = q.Where(table+".category_id IN ?", categoryIDs)
	}
	q = q.Order(table + ".ease_factor ASC").Order(table + ".id ASC").Limit(limit)

	var items []model.ReviewableItem
	switch kind {
	case model.ItemKindCatalog:
		var found []*model.CatalogItem
		err = q.Find(&found).Error
		for _, it := range found {
			items = append(items, it)
		}
	case model.ItemKindPersonal:
		var found []*model.PersonalItem
		err = q.Find(&found).Error
		for _, it := range found {
			items = append(items, it)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("gormItemRepository.FindUnseen: %w", err)
	}
	return items, nil
}

func (r *gormItemRepository) CreateCatalogItems(ctx context.Context, tx *gorm.DB, items []*model.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).CreateInBatches(items, 100).Error; err != nil {
		return fmt.Errorf("gormItemRepository.CreateCatalogItems: %w", err)
	}
	return nil
}

func (r *gormItemRepository) CreatePersonalItem(ctx context.Context, tx *gorm.DB, item *model.PersonalItem) error {
	if err := tx.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("gormItemRepository.CreatePersonalItem: %w", err)
	}
	return nil
}
