// Package importer は表計算ファイルからカタログアイテムを取り込む
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"study_cards/internal/model"
	"study_cards/internal/repository"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// 列の並び: カテゴリコード, 問題, 答え, 解説, イーズファクター
const (
	colCategory = iota
	colQuestion
	colAnswer
	colExplanation
	colEase
)

type Options struct {
	Sheet      string // 空なら先頭のシート
	ParentCode string // 新しく作るカテゴリの親。空ならルートに作る
	SkipHeader bool
	MinEase    float64 // これ未満のイーズファクターの行は取り込まない
	MaxEase    float64 // これを超える行は取り込まない。0 なら上限なし
}

// RowError は取り込めなかった行と理由
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type Result struct {
	Imported          int        `json:"imported"`
	CategoriesCreated int        `json:"categories_created"`
	Skipped           []RowError `json:"skipped"`
}

type Importer struct {
	db           *gorm.DB
	itemRepo     repository.ItemRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

func NewImporter(db *gorm.DB, itemRepo repository.ItemRepository, categoryRepo repository.CategoryRepository, logger *slog.Logger) *Importer {
	return &Importer{
		db:           db,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (im *Importer) ImportFile(ctx context.Context, path string, opts Options) (*Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return im.Import(ctx, f, opts)
}

func (im *Importer) ImportReader(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return im.Import(ctx, f, opts)
}

// Import は1シート分を1トランザクションで取り込む。不正な行は読み飛ばして Result に記録する
func (im *Importer) Import(ctx context.Context, f *excelize.File, opts Options) (*Result, error) {
	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", model.ErrInvalidInput)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %v", model.ErrInvalidInput, sheet, err)
	}
	return im.ImportRows(ctx, sheet, rows, opts)
}

// ImportRows はシートと同じ列並びの行を取り込む。source はログ用の名前
func (im *Importer) ImportRows(ctx context.Context, source string, rows [][]string, opts Options) (*Result, error) {
	logger := im.logger.With("source", source)

	result := &Result{Skipped: []RowError{}}
	err := im.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parentID *uuid.UUID
		if opts.ParentCode != "" {
			parent, err := im.categoryRepo.FindByCode(ctx, tx, opts.ParentCode)
			if err != nil {
				return fmt.Errorf("parent category %q: %w", opts.ParentCode, err)
			}
			parentID = &parent.ID
		}

		categories := make(map[string]uuid.UUID)
		var items []*model.CatalogItem
		for i, row := range rows {
			rowNum := i + 1
			if opts.SkipHeader && i == 0 {
				continue
			}
			item, reason := parseRow(row, opts)
			if reason != "" {
				result.Skipped = append(result.Skipped, RowError{Row: rowNum, Reason: reason})
				continue
			}

			code := cell(row, colCategory)
			categoryID, ok := categories[code]
			if !ok {
				id, created, err := im.resolveCategory(ctx, tx, code, parentID)
				if err != nil {
					return err
				}
				if created {
					result.CategoriesCreated++
				}
				categories[code] = id
				categoryID = id
			}
			item.CategoryID = categoryID
			items = append(items, item)
		}

		if err := im.itemRepo.CreateCatalogItems(ctx, tx, items); err != nil {
			return err
		}
		result.Imported = len(items)
		return nil
	})
	if err != nil {
		logger.Error("Import failed", "error", err)
		return nil, err
	}

	logger.Info("Import finished",
		"imported", result.Imported,
		"categories_created", result.CategoriesCreated,
		"skipped", len(result.Skipped))
	return result, nil
}

func (im *Importer) resolveCategory(ctx context.Context, tx *gorm.DB, code string, parentID *uuid.UUID) (uuid.UUID, bool, error) {
	existing, err := im.categoryRepo.FindByCode(ctx, tx, code)
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, false, err
	}

	category := &model.Category{ID: uuid.New(), Code: code, Name: code, ParentID: parentID}
	if err := im.categoryRepo.Create(ctx, tx, category); err != nil {
		return uuid.Nil, false, fmt.Errorf("create category %q: %w", code, err)
	}
	return category.ID, true, nil
}

// parseRow は1行をアイテムに変換する。取り込めない場合は理由を返す
func parseRow(row []string, opts Options) (*model.CatalogItem, string) {
	code := cell(row, colCategory)
	question := cell(row, colQuestion)
	answer := cell(row, colAnswer)
	switch {
	case code == "":
		return nil, "category code is empty"
	case question == "":
		return nil, "question is empty"
	case answer == "":
		return nil, "answer is empty"
	}

	ease := model.DefaultItemEase
	if raw := cell(row, colEase); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Sprintf("ease factor %q is not a number", raw)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Sprintf("ease factor %q is not a finite number", raw)
		}
		if v < opts.MinEase {
			return nil, fmt.Sprintf("ease factor %.2f is below %.2f", v, opts.MinEase)
		}
		if opts.MaxEase > 0 && v > opts.MaxEase {
			return nil, fmt.Sprintf("ease factor %.2f is above %.2f", v, opts.MaxEase)
		}
		ease = v
	}

	return &model.CatalogItem{
		ID:          uuid.New(),
		Question:    question,
		Answer:      answer,
		Explanation: cell(row, colExplanation),
		EaseFactor:  ease,
	}, ""
}

// GetRows は末尾の空セルを返さないので、列数が足りない行もある
func cell(row []string, col int) string {
	if col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}
