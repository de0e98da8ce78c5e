// internal/model/study.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// StudyItem は学習キューの1件。Record が nil なら未学習のアイテム
type StudyItem struct {
	Item   ReviewableItem
	Record *ReviewRecord
}

func (s *StudyItem) Ease() float64 {
	if s.Record != nil {
		return s.Record.EaseFactor
	}
	return s.Item.InitialEase()
}

// AnswerOutcome は回答処理の結果
type AnswerOutcome struct {
	Record       *ReviewRecord
	CategoryCode string
	Mastered     bool
}

// SubmitAnswerRequest は回答送信リクエストのDTO
type SubmitAnswerRequest struct {
	ItemID    string `json:"item_id" validate:"required,uuid"`
	ItemKind  string `json:"item_kind" validate:"required,oneof=catalog personal"`
	IsCorrect *bool  `json:"is_correct" validate:"required"`
}

// AnswerResultResponse は回答送信のレスポンスDTO
type AnswerResultResponse struct {
	ItemID          uuid.UUID `json:"item_id"`
	ItemKind        ItemKind  `json:"item_kind"`
	IsCorrect       bool      `json:"is_correct"`
	NextReviewDate  string    `json:"next_review_date"`
	EaseFactor      float64   `json:"ease_factor"`
	IntervalDays    int       `json:"interval_days"`
	RepetitionCount int       `json:"repetition_count"`
	Mastered        bool      `json:"mastered"`
}

// StudyItemResponse は学習キューのレスポンスDTO
type StudyItemResponse struct {
	ItemID       uuid.UUID `json:"item_id"`
	ItemKind     ItemKind  `json:"item_kind"`
	CategoryCode string    `json:"category_code"`
	Prompt
	EaseFactor     float64 `json:"ease_factor"`
	IsNew          bool    `json:"is_new"`
	NextReviewDate string  `json:"next_review_date,omitempty"`
}

// RecommendationResponse はおすすめ学習アイテムのレスポンスDTO
type RecommendationResponse struct {
	ItemID         uuid.UUID `json:"item_id"`
	ItemKind       ItemKind  `json:"item_kind"`
	CategoryCode   string    `json:"category_code,omitempty"`
	Question       string    `json:"question,omitempty"`
	Score          int       `json:"score"`
	EaseFactor     float64   `json:"ease_factor"`
	NextReviewDate string    `json:"next_review_date"`
	LastCorrect    bool      `json:"last_correct"`
}

// DateLayout は日付のみのJSON表現
const DateLayout = "2006-01-02"

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// UserIDKey はコンテキストに認証済みユーザーIDを格納するキー
type ContextKey string

const UserIDKey ContextKey = "userID"
