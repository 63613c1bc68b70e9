package engine

import (
	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// ComputeTrades は有効なウィンドウごとに1件の仮想トレードを導出します。
// バリデータが必要なバーの存在を保証しているため、ここにエラーパスは
// ありません。イグジットは常にイグジット相対日の終値です。
//
// MFE/MAE は保有区間 [エントリー相対日..イグジット相対日] の高値/安値
// から測った未実現リターンの最良値/最悪値で、符号はクランプしません
// （MAE は通常負になります）。
func ComputeTrades(validWindows []entity.EventWindow, entry EntrySpec, exitDay int) []entity.Trade {
	trades := make([]entity.Trade, 0, len(validWindows))
	for _, w := range validWindows {
		trades = append(trades, computeTrade(w, entry, exitDay))
	}
	return trades
}

func computeTrade(w entity.EventWindow, entry EntrySpec, exitDay int) entity.Trade {
	entryBar, _ := w.BarAt(entry.RelativeDay)
	exitBar, _ := w.BarAt(exitDay)

	entryPrice := priceOf(entryBar.Open, entryBar.High, entryBar.Low, entryBar.Close, entry.Field)
	exitPrice := exitBar.Close

	absReturn := exitPrice - entryPrice
	pctReturn := absReturn / entryPrice * 100

	highest := entryBar.High
	lowest := entryBar.Low
	for _, b := range w.Bars {
		if b.RelativeDay < entry.RelativeDay || b.RelativeDay > exitDay {
			continue
		}
		if b.High > highest {
			highest = b.High
		}
		if b.Low < lowest {
			lowest = b.Low
		}
	}
	mfe := (highest - entryPrice) / entryPrice * 100
	mae := (lowest - entryPrice) / entryPrice * 100

	return entity.Trade{
		EventName:        w.Event.Name,
		EventDate:        w.Event.Date,
		Year:             w.Event.Year,
		Category:         w.Event.Category,
		EntryDate:        entryBar.Date,
		EntryPrice:       entryPrice,
		ExitDate:         exitBar.Date,
		ExitPrice:        exitPrice,
		AbsoluteReturn:   absReturn,
		ReturnPercentage: pctReturn,
		MFE:              mfe,
		MAE:              mae,
		HoldingDays:      exitDay - entry.RelativeDay,
		// ゼロリターンは勝ちに数えません。
		IsProfitable: pctReturn > 0,
	}
}
