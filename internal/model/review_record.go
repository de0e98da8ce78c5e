// internal/model/review_record.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ReviewRecord は (ユーザー, アイテム) ごとのスケジューリング状態
// (user_id, item_kind, item_id) のユニークインデックスは repository.Migrate で作成する
type ReviewRecord struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Item            ItemRef        `gorm:"embedded;embeddedPrefix:item_" json:"item"`
	EaseFactor      float64        `gorm:"not null" json:"ease_factor"`
	IntervalDays    int            `gorm:"not null;default:1" json:"interval_days"`
	RepetitionCount int            `gorm:"not null;default:1" json:"repetition_count"`
	NextReviewDate  datatypes.Date `gorm:"not null;index" json:"next_review_date"`
	LastCorrect     bool           `gorm:"not null" json:"last_correct"`
	StudiedAt       time.Time      `gorm:"not null" json:"studied_at"`
	SessionID       *uuid.UUID     `gorm:"type:uuid" json:"session_id,omitempty"`
	Version         int64          `gorm:"not null;default:1" json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (ReviewRecord) TableName() string {
	return "review_records"
}

// NextReview は次回復習日を time.Time で返す
func (r *ReviewRecord) NextReview() time.Time {
	return time.Time(r.NextReviewDate)
}

// ReviewLog は回答1件ごとの追記専用履歴
type ReviewLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_review_logs_user_studied"`
	Item      ItemRef    `gorm:"embedded;embeddedPrefix:item_"`
	SessionID *uuid.UUID `gorm:"type:uuid;index"`
	IsCorrect bool       `gorm:"not null"`
	StudiedAt time.Time  `gorm:"not null;index:idx_review_logs_user_studied"`
}

func (ReviewLog) TableName() string {
	return "review_logs"
}
