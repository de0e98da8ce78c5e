// Package sm2 は SM-2 を簡略化したイーズファクター・復習間隔の計算を提供します。
// 状態もI/Oも持たない純粋関数のみです。
package sm2

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams = errors.New("sm2: parameters out of bounds")
	// ErrInvalidState は計算結果が不変条件を破ったことを表す。発生したら実装の不具合
	ErrInvalidState = errors.New("sm2: invariant violated")
)

// Params はスケジューリング計算の定数。テストで境界値を変えられるよう値として渡す
type Params struct {
	MinEase          float64 // イーズファクターの下限
	MaxEase          float64 // イーズファクターの上限
	FirstInterval    int     // 1回目 (および不正解時) の間隔 (日)
	SecondInterval   int     // 2回目の間隔 (日)
	MaxIntervalDays  int     // 間隔の上限 (日)
	CorrectQuality   int     // 正解を SM-2 の品質値 (0-5) に換算した値
	IncorrectQuality int     // 不正解を SM-2 の品質値 (0-5) に換算した値
}

func DefaultParams() Params {
	return Params{
		MinEase:          1.3,
		MaxEase:          3.0,
		FirstInterval:    1,
		SecondInterval:   6,
		MaxIntervalDays:  36500,
		CorrectQuality:   5,
		IncorrectQuality: 2,
	}
}

// Validate はパラメータの整合性を検査する
func (p Params) Validate() error {
	switch {
	case p.MinEase < 1:
		// 1未満だと rep>=3 の間隔が0日に丸められうる
		return fmt.Errorf("%w: min ease = %f, must be >= 1", ErrInvalidParams, p.MinEase)
	case p.MaxEase < p.MinEase:
		return fmt.Errorf("%w: max ease = %f, must be >= min ease %f", ErrInvalidParams, p.MaxEase, p.MinEase)
	case p.FirstInterval < 1:
		return fmt.Errorf("%w: first interval = %d, must be >= 1", ErrInvalidParams, p.FirstInterval)
	case p.SecondInterval < p.FirstInterval:
		return fmt.Errorf("%w: second interval = %d, must be >= first interval %d", ErrInvalidParams, p.SecondInterval, p.FirstInterval)
	case p.MaxIntervalDays < p.SecondInterval:
		return fmt.Errorf("%w: max interval = %d, must be >= second interval %d", ErrInvalidParams, p.MaxIntervalDays, p.SecondInterval)
	case !validQuality(p.CorrectQuality) || !validQuality(p.IncorrectQuality):
		return fmt.Errorf("%w: quality must be in [0, 5], got correct=%d incorrect=%d",
			ErrInvalidParams, p.CorrectQuality, p.IncorrectQuality)
	}
	return nil
}

func validQuality(q int) bool {
	return q >= 0 && q <= 5
}
