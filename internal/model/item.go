// internal/model/item.go
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultItemEase は復習記録がまだ無いアイテムのイーズファクター
const DefaultItemEase = 2.5

// ItemKind は ReviewRecord が指すアイテムの種類 (タグ付きユニオンの判別子)
type ItemKind string

const (
	ItemKindCatalog  ItemKind = "catalog"  // 管理者が作成した共有アイテム
	ItemKindPersonal ItemKind = "personal" // ユーザー個人が作成したアイテム
)

func (k ItemKind) Valid() bool {
	return k == ItemKindCatalog || k == ItemKindPersonal
}

func ParseItemKind(s string) (ItemKind, error) {
	k := ItemKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: unknown item kind %q", ErrInvalidInput, s)
	}
	return k, nil
}

// ItemRef はアイテムへの参照。カタログか個人か、どちらか一方だけを指す
type ItemRef struct {
	Kind ItemKind  `gorm:"type:varchar(16);not null" json:"item_kind"`
	ID   uuid.UUID `gorm:"type:uuid;not null" json:"item_id"`
}

func CatalogRef(id uuid.UUID) ItemRef { return ItemRef{Kind: ItemKindCatalog, ID: id} }
func PersonalRef(id uuid.UUID) ItemRef { return ItemRef{Kind: ItemKindPersonal, ID: id} }

// Valid は判別子が既知でIDが設定されているかを返す
func (r ItemRef) Valid() bool {
	return r.Kind.Valid() && r.ID != uuid.Nil
}

func (r ItemRef) String() string {
	return string(r.Kind) + ":" + r.ID.String()
}

// Prompt は出題内容
type Prompt struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation,omitempty"`
}

// ReviewableItem はスケジューリング対象になれるアイテムの共通機能
type ReviewableItem interface {
	Ref() ItemRef
	InitialEase() float64
	CategoryKey() uuid.UUID
	CategoryCode() string
	Prompt() Prompt
	// CheckOwner は userID がこのアイテムを学習できない場合にエラーを返す
	CheckOwner(userID uuid.UUID) error
}

// CatalogItem は全ユーザーに公開される共有アイテム
type CatalogItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Question    string         `gorm:"not null" json:"question"`
	Answer      string         `gorm:"not null" json:"answer"`
	Explanation string         `json:"explanation,omitempty"`
	EaseFactor  float64        `gorm:"not null;default:2.5" json:"ease_factor"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}

// PersonalItem は1人のユーザーだけが所有するアイテム
type PersonalItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Question    string         `gorm:"not null" json:"question"`
	Answer      string         `gorm:"not null" json:"answer"`
	Explanation string         `json:"explanation,omitempty"`
	EaseFactor  float64        `gorm:"not null;default:2.5" json:"ease_factor"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (PersonalItem) TableName() string {
	return "personal_items"
}

func (c *CatalogItem) Ref() ItemRef { return CatalogRef(c.ID) }
func (c *CatalogItem) InitialEase() float64 { return initialEase(c.EaseFactor) }
func (c *CatalogItem) CategoryKey() uuid.UUID { return c.CategoryID }
func (c *CatalogItem) CategoryCode() string { return categoryCode(c.Category) }
func (c *CatalogItem) CheckOwner(uuid.UUID) error { return nil }
func (c *CatalogItem) Prompt() Prompt {
	return Prompt{Question: c.Question, Answer: c.Answer, Explanation: c.Explanation}
}

func (p *PersonalItem) Ref() ItemRef { return PersonalRef(p.ID) }
func (p *PersonalItem) InitialEase() float64 { return initialEase(p.EaseFactor) }
func (p *PersonalItem) CategoryKey() uuid.UUID { return p.CategoryID }
func (p *PersonalItem) CategoryCode() string { return categoryCode(p.Category) }
func (p *PersonalItem) CheckOwner(userID uuid.UUID) error {
	if p.OwnerID != userID {
		return ErrOwnershipViolation
	}
	return nil
}
func (p *PersonalItem) Prompt() Prompt {
	return Prompt{Question: p.Question, Answer: p.Answer, Explanation: p.Explanation}
}

func initialEase(e float64) float64 {
	if e <= 0 {
		return DefaultItemEase
	}
	return e
}

func categoryCode(c *Category) string {
	if c == nil {
		return ""
	}
	return c.Code
}
