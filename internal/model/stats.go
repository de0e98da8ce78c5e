// internal/model/stats.go
package model

import "github.com/google/uuid"

// CategoryCount はカテゴリごとの件数。アイテムプールごとの集計結果にも使う
type CategoryCount struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryCode string    `json:"category_code"`
	Count        int64     `json:"count"`
}

// CategoryAccuracy はカテゴリごとの回答数と正解数
type CategoryAccuracy struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryCode string    `json:"category_code"`
	Total        int64     `json:"total"`
	Correct      int64     `json:"correct"`
}

// CategoryStats はカタログ・個人アイテムを合算したカテゴリ別統計
type CategoryStats struct {
	CategoryID   uuid.UUID `json:"category_id"`
	CategoryCode string    `json:"category_code"`
	Studied      int64     `json:"studied"`
	Learning     int64     `json:"learning"`
	Due          int64     `json:"due"`
	Mastered     int64     `json:"mastered"`
	Answered     int64     `json:"answered"`
	Accuracy     float64   `json:"accuracy"`
}

// StudyStatsResponse は学習統計のレスポンスDTO
type StudyStatsResponse struct {
	DueCount     int64            `json:"due_count"`
	StudiedCount int64            `json:"studied_count"`
	Categories   []*CategoryStats `json:"categories"`
}
