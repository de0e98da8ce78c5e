// Package clock は「今日」と「現在時刻」の取得元を差し替え可能にします。
package clock

import "time"

// Clock は現在時刻を返す
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Real はシステム時刻を返す Clock
func Real() Clock { return realClock{} }

// Fixed は常に同じ時刻を返す Clock。テスト用
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }

// Today は c の現在時刻をUTCの日付 (時刻部分なし) に丸めて返す
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf は t をUTCの0時に丸める
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
