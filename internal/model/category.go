// internal/model/category.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Category はカテゴリ階層のノード。アイテムは葉カテゴリにのみ属する
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	Name      string     `gorm:"not null" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parent_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}
