package engine

import (
	"fmt"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// WindowConfig はイベントウィンドウの幅の指定です。
type WindowConfig struct {
	DaysBefore      int
	DaysAfter       int
	IncludeEventDay bool
}

// Width は有効なウィンドウが持つべきバー数です。
func (c WindowConfig) Width() int {
	return c.DaysBefore + c.DaysAfter + 1
}

// 除外理由。ウィンドウ構築段階で確定するもの。
const (
	ReasonNotTradingDay = "Event day is not a trading day"
)

// BuildWindows は各イベント発生をカレンダー索引にアンカーし、
// 固定幅の相対日ウィンドウを具現化します。
//
// T0 のアンカーはハードルールです: イベント当日にセッションが存在しない
// 場合、近隣にセッションがあってもウィンドウは無効になります。
// ウィンドウ範囲はカレンダー位置の算術で決まり（日付演算ではない）、
// 相対日 N は常に「T0 の N 営業日後（前）」を意味します。
func BuildWindows(events []entity.EventOccurrence, cal *Calendar, cfg WindowConfig) []entity.EventWindow {
	windows := make([]entity.EventWindow, 0, len(events))
	for _, ev := range events {
		windows = append(windows, buildWindow(ev, cal, cfg))
	}
	return windows
}

func buildWindow(ev entity.EventOccurrence, cal *Calendar, cfg WindowConfig) entity.EventWindow {
	t0, ok := cal.IndexOf(ev.Date)
	if !ok {
		return entity.EventWindow{
			Event:           ev,
			T0Index:         -1,
			IsValid:         false,
			ExclusionReason: ReasonNotTradingDay,
		}
	}

	start := t0 - cfg.DaysBefore
	end := t0 + cfg.DaysAfter
	if start < 0 || end >= cal.Len() {
		return entity.EventWindow{
			Event:           ev,
			T0Index:         t0,
			IsValid:         false,
			ExclusionReason: fmt.Sprintf("Insufficient data: need %d days before and %d days after", cfg.DaysBefore, cfg.DaysAfter),
		}
	}

	bars := make([]entity.WindowBar, 0, cfg.Width())
	for i := start; i <= end; i++ {
		s := cal.At(i)
		bars = append(bars, entity.WindowBar{
			RelativeDay:      i - t0,
			Date:             s.Date,
			Open:             s.Open,
			High:             s.High,
			Low:              s.Low,
			Close:            s.Close,
			Volume:           s.Volume,
			ReturnPercentage: s.ReturnPercentage,
			IsEventDay:       i == t0,
		})
	}

	return entity.EventWindow{
		Event:   ev,
		T0Index: t0,
		Bars:    bars,
		IsValid: true,
	}
}
