package entity

import "time"

// WindowBar はイベント相対日1日分の価格データです。
// RelativeDay は T0 を 0 とする営業日単位の符号付きオフセットです。
type WindowBar struct {
	RelativeDay      int
	Date             time.Time
	Open             float64
	High             float64
	Low              float64
	Close            float64
	Volume           int64
	ReturnPercentage float64
	IsEventDay       bool
}

// EventWindow は1つのイベント発生を取引カレンダーにアンカーした分析単位です。
// IsValid なウィンドウは daysBefore+daysAfter+1 本のバーを持ち、
// RelativeDay==0 のバーがちょうど1本存在します。
type EventWindow struct {
	Event           EventOccurrence
	T0Index         int
	Bars            []WindowBar
	IsValid         bool
	ExclusionReason string
}

// BarAt は指定した相対日のバーを返します。見つからない場合は ok=false です。
func (w EventWindow) BarAt(relativeDay int) (WindowBar, bool) {
	for _, b := range w.Bars {
		if b.RelativeDay == relativeDay {
			return b, true
		}
	}
	return WindowBar{}, false
}
