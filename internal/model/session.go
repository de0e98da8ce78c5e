// internal/model/session.go
package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// StudySession は連続した学習時間の回答数カウンター
type StudySession struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"-"`
	StartedAt       time.Time  `gorm:"not null" json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	LastAnsweredAt  *time.Time `json:"last_answered_at,omitempty"`
	TotalAnswered   int        `gorm:"not null;default:0" json:"total_answered"`
	CorrectAnswered int        `gorm:"not null;default:0" json:"correct_answered"`
	CreatedAt       time.Time  `json:"-"`
	UpdatedAt       time.Time  `json:"-"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}

func (s *StudySession) Active() bool {
	return s.EndedAt == nil
}

// SessionResponse はセッション情報のレスポンスDTO
type SessionResponse struct {
	ID              uuid.UUID  `json:"id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Active          bool       `json:"active"`
	TotalAnswered   int        `json:"total_answered"`
	CorrectAnswered int        `json:"correct_answered"`
	Accuracy        float64    `json:"accuracy"`
}

func NewSessionResponse(s *StudySession) *SessionResponse {
	return &SessionResponse{
		ID:              s.ID,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		Active:          s.Active(),
		TotalAnswered:   s.TotalAnswered,
		CorrectAnswered: s.CorrectAnswered,
		Accuracy:        Percent(int64(s.CorrectAnswered), int64(s.TotalAnswered)),
	}
}

// Percent は正答率を小数第1位で丸めた百分率で返す。total が0なら0
func Percent(correct, total int64) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(correct)*1000/float64(total)) / 10
}
