package service

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"study_cards/internal/model"
)

var ErrInvalidWeights = errors.New("priority weights out of bounds")

// PriorityWeights はおすすめ順スコアの重みとシグナルの閾値
type PriorityWeights struct {
	RepeatedMistake int     // 同じアイテムを繰り返し間違えている
	Overdue         int     // 復習予定日を大きく過ぎている
	RecentlyWrong   int     // 直近の不正解に含まれる
	EaseMax         int     // イーズファクター由来の加点の上限
	EaseCeiling     float64 // この値以上のイーズファクターは加点0
	MinEase         float64 // この値のイーズファクターで加点が EaseMax になる

	RepeatedMistakeThreshold int // 不正解がこの回数以上で「繰り返しの間違い」
	OverdueDays              int // 予定日からこの日数より多く過ぎたら「期限超過」
	RecentWrongLimit         int // 直近何件の不正解を見るか
}

func DefaultPriorityWeights() PriorityWeights {
	return PriorityWeights{
		RepeatedMistake:          1000,
		Overdue:                  500,
		RecentlyWrong:            300,
		EaseMax:                  120,
		EaseCeiling:              2.5,
		MinEase:                  1.3,
		RepeatedMistakeThreshold: 3,
		OverdueDays:              7,
		RecentWrongLimit:         20,
	}
}

func (w PriorityWeights) Validate() error {
	switch {
	case w.RepeatedMistake < 0 || w.Overdue < 0 || w.RecentlyWrong < 0 || w.EaseMax < 0:
		return fmt.Errorf("%w: scores must be >= 0", ErrInvalidWeights)
	case w.EaseCeiling <= w.MinEase:
		return fmt.Errorf("%w: ease ceiling %f must be > min ease %f", ErrInvalidWeights, w.EaseCeiling, w.MinEase)
	case w.RepeatedMistakeThreshold < 1 || w.OverdueDays < 0 || w.RecentWrongLimit < 1:
		return fmt.Errorf("%w: thresholds must be positive", ErrInvalidWeights)
	}
	return nil
}

// Signals はユーザー単位で一度だけ取得するシグナルの集合
type Signals struct {
	RepeatedMistakes map[model.ItemRef]struct{}
	Overdue          map[model.ItemRef]struct{}
	RecentlyWrong    map[model.ItemRef]struct{}
}

func NewSignals(repeated, overdue, recentlyWrong []model.ItemRef) Signals {
	return Signals{
		RepeatedMistakes: toSet(repeated),
		Overdue:          toSet(overdue),
		RecentlyWrong:    toSet(recentlyWrong),
	}
}

func toSet(refs []model.ItemRef) map[model.ItemRef]struct{} {
	set := make(map[model.ItemRef]struct{}, len(refs))
	for _, ref := range refs {
		set[ref] = struct{}{}
	}
	return set
}

func has(set map[model.ItemRef]struct{}, ref model.ItemRef) bool {
	_, ok := set[ref]
	return ok
}

// ScoredRecord はスコア付きの復習記録。保存はしない
type ScoredRecord struct {
	Record *model.ReviewRecord
	Score  int
}

type PriorityScorer struct {
	weights PriorityWeights
}

func NewPriorityScorer(weights PriorityWeights) *PriorityScorer {
	return &PriorityScorer{weights: weights}
}

// Score は1件の記録のスコアを返す。アイテムを特定できない記録は0
func (p *PriorityScorer) Score(record *model.ReviewRecord, signals Signals) int {
	if record == nil || !record.Item.Valid() {
		return 0
	}
	ref := record.Item
	w := p.weights

	score := 0
	if has(signals.RepeatedMistakes, ref) {
		score += w.RepeatedMistake
	}
	if has(signals.Overdue, ref) {
		score += w.Overdue
	}
	if has(signals.RecentlyWrong, ref) {
		score += w.RecentlyWrong
	}
	return score + p.easeScore(record.EaseFactor)
}

// easeScore はイーズファクターが低いほど大きい加点 (0〜EaseMax)
func (p *PriorityScorer) easeScore(ease float64) int {
	w := p.weights
	ratio := 1 - (ease-w.MinEase)/(w.EaseCeiling-w.MinEase)
	v := int(math.Round(float64(w.EaseMax) * ratio))
	return max(0, min(w.EaseMax, v))
}

// Rank はスコアの降順に並べ、limit 件に切り詰める。limit <= 0 なら切り詰めない。
// 同点の場合は次回復習日の昇順、アイテムIDの昇順
func (p *PriorityScorer) Rank(records []*model.ReviewRecord, signals Signals, limit int) []ScoredRecord {
	scored := make([]ScoredRecord, 0, len(records))
	for _, r := range records {
		if r == nil {
			continue
		}
		scored = append(scored, ScoredRecord{Record: r, Score: p.Score(r, signals)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		an, bn := a.Record.NextReview(), b.Record.NextReview()
		if !an.Equal(bn) {
			return an.Before(bn)
		}
		return bytes.Compare(a.Record.Item.ID[:], b.Record.Item.ID[:]) < 0
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
