package service

import (
	"github.com/google/uuid"

	"study_cards/internal/model"
)

// MergeCounts はカタログ分と個人分のカテゴリ別件数を1つにまとめる。
// カテゴリIDごとに件数を合計し、最初に現れたコードと出現順を保つ。
// nil やカテゴリIDの無い行は読み飛ばす。入力は変更しない
func MergeCounts(a, b []*model.CategoryCount) []*model.CategoryCount {
	merged := make([]*model.CategoryCount, 0, len(a)+len(b))
	index := make(map[uuid.UUID]int, len(a)+len(b))

	for _, list := range [][]*model.CategoryCount{a, b} {
		for _, c := range list {
			if c == nil || c.CategoryID == uuid.Nil {
				continue
			}
			if i, ok := index[c.CategoryID]; ok {
				merged[i].Count += c.Count
				continue
			}
			index[c.CategoryID] = len(merged)
			copied := *c
			merged = append(merged, &copied)
		}
	}
	return merged
}

// MergeAccuracy は MergeCounts と同じ規則で回答数・正解数を合算する
func MergeAccuracy(a, b []*model.CategoryAccuracy) []*model.CategoryAccuracy {
	merged := make([]*model.CategoryAccuracy, 0, len(a)+len(b))
	index := make(map[uuid.UUID]int, len(a)+len(b))

	for _, list := range [][]*model.CategoryAccuracy{a, b} {
		for _, c := range list {
			if c == nil || c.CategoryID == uuid.Nil {
				continue
			}
			if i, ok := index[c.CategoryID]; ok {
				merged[i].Total += c.Total
				merged[i].Correct += c.Correct
				continue
			}
			index[c.CategoryID] = len(merged)
			copied := *c
			merged = append(merged, &copied)
		}
	}
	return merged
}
