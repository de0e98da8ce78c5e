// Package testutil はテスト用のインメモリDBとデータ作成ヘルパー
package testutil

import (
	"fmt"
	"testing"
	"time"

	"study_cards/internal/model"
	"study_cards/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewSQLiteDB はテストごとに独立したインメモリDBを作り、マイグレーションまで済ませる
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // テスト中はログを抑制
		TranslateError: true,
	})
	require.NoError(t, err, "failed to open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 共有キャッシュのロック競合を避ける
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, repository.Migrate(db), "failed to migrate")
	return db
}

// Date は UTC の日付を返す
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func CreateCategory(t *testing.T, db *gorm.DB, code string, parentID *uuid.UUID) *model.Category {
	t.Helper()
	c := &model.Category{ID: uuid.New(), Code: code, Name: code, ParentID: parentID}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateCatalogItem(t *testing.T, db *gorm.DB, categoryID uuid.UUID, question string, ease float64) *model.CatalogItem {
	t.Helper()
	item := &model.CatalogItem{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Question:   question,
		Answer:     question + "-answer",
		EaseFactor: ease,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func CreatePersonalItem(t *testing.T, db *gorm.DB, ownerID, categoryID uuid.UUID, question string, ease float64) *model.PersonalItem {
	t.Helper()
	item := &model.PersonalItem{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Question:   question,
		Answer:     question + "-answer",
		EaseFactor: ease,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

// CreateRecord は復習記録を直接作成する
func CreateRecord(t *testing.T, db *gorm.DB, userID uuid.UUID, ref model.ItemRef, ease float64, repetition int, next time.Time) *model.ReviewRecord {
	t.Helper()
	r := &model.ReviewRecord{
		ID:              uuid.New(),
		UserID:          userID,
		Item:            ref,
		EaseFactor:      ease,
		IntervalDays:    1,
		RepetitionCount: repetition,
		NextReviewDate:  datatypes.Date(next),
		LastCorrect:     true,
		StudiedAt:       next.AddDate(0, 0, -1),
		Version:         1,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}

// CreateLog は回答履歴を1件作成する
func CreateLog(t *testing.T, db *gorm.DB, userID uuid.UUID, ref model.ItemRef, correct bool, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&model.ReviewLog{
		ID:        uuid.New(),
		UserID:    userID,
		Item:      ref,
		IsCorrect: correct,
		StudiedAt: at,
	}).Error)
}
