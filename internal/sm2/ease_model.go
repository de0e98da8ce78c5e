package sm2

import (
	"fmt"
	"math"
)

// State は1件の復習記録のうち、計算に関わる部分
type State struct {
	Ease         float64
	IntervalDays int
	Repetition   int
}

// Delta は SM-2 の品質値 q に対するイーズファクターの増減量
//
//	EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
func Delta(quality int) float64 {
	d := float64(5 - quality)
	return 0.1 - d*(0.08+d*0.02)
}

// NextEase は回答の正誤から新しいイーズファクターを返す。
// 結果は [MinEase, MaxEase] に収まる。ただし既に MaxEase を超えている値を下げることはしない
func (p Params) NextEase(current float64, correct bool) float64 {
	q := p.IncorrectQuality
	if correct {
		q = p.CorrectQuality
	}
	next := current + Delta(q)
	if next > p.MaxEase {
		next = math.Max(p.MaxEase, math.Min(current, next))
	}
	return math.Max(next, p.MinEase)
}

// NextInterval は次の復習までの日数を返す。
// repetition はこの回答を含めた回答回数。
func (p Params) NextInterval(repetition int, ease float64, correct bool) int {
	if !correct || repetition <= 1 {
		return p.FirstInterval
	}
	if repetition == 2 {
		return p.SecondInterval
	}

	maxDays := float64(p.MaxIntervalDays)
	prev := math.Round(float64(p.SecondInterval) * math.Pow(ease, float64(repetition-3)))
	if prev >= maxDays {
		return p.MaxIntervalDays
	}
	next := math.Round(prev * ease)
	if next >= maxDays {
		return p.MaxIntervalDays
	}
	return int(next)
}

// Apply は現在の状態に回答を1件適用した次の状態を返す。
// 不変条件 (ease >= MinEase, interval >= 1) を破った場合は panic する
func (p Params) Apply(s State, correct bool) State {
	repetition := s.Repetition + 1
	next := State{
		IntervalDays: p.NextInterval(repetition, s.Ease, correct),
		Ease:         p.NextEase(s.Ease, correct),
		Repetition:   repetition,
	}
	p.mustHold(next)
	return next
}

// Initial は初回回答時の状態を返す
func (p Params) Initial(itemEase float64, correct bool) State {
	s := State{
		Ease:         p.NextEase(itemEase, correct),
		IntervalDays: p.FirstInterval,
		Repetition:   1,
	}
	p.mustHold(s)
	return s
}

func (p Params) mustHold(s State) {
	if s.Ease < p.MinEase || math.IsNaN(s.Ease) || s.IntervalDays < 1 || s.Repetition < 1 {
		panic(fmt.Errorf("%w: ease=%f interval=%d repetition=%d", ErrInvalidState, s.Ease, s.IntervalDays, s.Repetition))
	}
}
