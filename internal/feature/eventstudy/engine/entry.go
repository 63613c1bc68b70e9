package engine

import (
	"regexp"
	"strconv"
	"strings"
)

// PriceField はエントリー価格として参照するOHLCフィールドです。
type PriceField int

const (
	Open PriceField = iota
	High
	Low
	Close
)

// EntrySpec はパース済みのエントリー指定です。ワイヤ上の文字列形式
// （例: "T-1_CLOSE"）はリクエスト境界で一度だけパースされ、
// 以降はこの型で受け渡します。
type EntrySpec struct {
	RelativeDay int
	Field       PriceField
	// Source は診断メッセージ用に保持する元の文字列表現です。
	Source string
}

// DefaultEntrySpec はパース不能な文字列に対するフォールバックです
// （イベント前日の終値）。
var DefaultEntrySpec = EntrySpec{RelativeDay: -1, Field: Close, Source: "T-1_CLOSE"}

var entryTypePattern = regexp.MustCompile(`^T([+-]?\d+)_(\w+)$`)

// ParseEntryType は "T<相対日>_<フィールド>" 形式のエントリー指定を
// パースします。形式に合わない文字列は DefaultEntrySpec になります。
func ParseEntryType(s string) EntrySpec {
	fallback := DefaultEntrySpec
	fallback.Source = s

	m := entryTypePattern.FindStringSubmatch(s)
	if m == nil {
		return fallback
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback
	}
	var field PriceField
	switch strings.ToLower(m[2]) {
	case "open":
		field = Open
	case "high":
		field = High
	case "low":
		field = Low
	case "close":
		field = Close
	default:
		return fallback
	}
	return EntrySpec{RelativeDay: day, Field: field, Source: s}
}

// priceOf はバーから指定フィールドの価格を取り出します。
func priceOf(open, high, low, close float64, f PriceField) float64 {
	switch f {
	case Open:
		return open
	case High:
		return high
	case Low:
		return low
	default:
		return close
	}
}
