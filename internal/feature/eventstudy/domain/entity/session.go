// Package entity はイベントスタディ分析のドメインモデルを定義します。
package entity

import "time"

// TradingSession は1銘柄・1営業日分の価格データです。
// ロード後は不変で、分析1回の間は取引カレンダーが専有します。
type TradingSession struct {
	Symbol           string
	Date             time.Time
	Open             float64
	High             float64
	Low              float64
	Close            float64
	Volume           int64
	ReturnPercentage float64
}
