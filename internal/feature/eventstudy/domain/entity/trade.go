package entity

import "time"

// Trade は有効な EventWindow とエントリー/イグジット指定から導出される
// 1イベント分の仮想トレードです。計算後は不変です。
type Trade struct {
	EventName        string
	EventDate        time.Time
	Year             int
	Category         string
	EntryDate        time.Time
	EntryPrice       float64
	ExitDate         time.Time
	ExitPrice        float64
	AbsoluteReturn   float64
	ReturnPercentage float64
	MFE              float64
	MAE              float64
	HoldingDays      int
	IsProfitable     bool
}
