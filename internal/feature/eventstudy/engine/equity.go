package engine

import (
	"sort"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// InitialEquity はエクイティカーブの開始値です。
const InitialEquity = 100.0

// BuildEquityCurve はトレードを日付昇順に並べ、逐次複利で連結した
// エクイティカーブを構築します。
//
// これは単純な逐次複利シミュレーションです。保有期間の重なりは実在の
// 暦上の間隔と無関係に「連続した背中合わせのトレード」として扱います。
// 意図した簡略化であり、修正すべきバグではありません。
func BuildEquityCurve(trades []entity.Trade) []entity.EquityPoint {
	sorted := make([]entity.Trade, len(trades))
	copy(sorted, trades)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].EventDate.Before(sorted[j].EventDate) })

	curve := make([]entity.EquityPoint, 0, len(sorted))
	equity := InitialEquity
	for _, t := range sorted {
		equity *= 1 + t.ReturnPercentage/100
		curve = append(curve, entity.EquityPoint{
			EventDate:        t.EventDate,
			EventName:        t.EventName,
			ReturnPercentage: t.ReturnPercentage,
			Equity:           equity,
		})
	}
	return curve
}

// MaxDrawdown はエクイティカーブの最大ピーク→トラフ下落率（正の百分率）
// を返します。エクイティが単調非減少なら 0 です。
func MaxDrawdown(curve []entity.EquityPoint) float64 {
	dd, _ := maxDrawdownWithPeriod(curve)
	return dd
}

// MaxDrawdownPeriod は最大ドローダウンとその発生期間を返します
// （レガシー指標）。期間はトラフから後方に走査し、ピーク値に等しい
// 直近の点をピーク日とします。
func MaxDrawdownPeriod(curve []entity.EquityPoint) (float64, entity.DrawdownPeriod) {
	return maxDrawdownWithPeriod(curve)
}

func maxDrawdownWithPeriod(curve []entity.EquityPoint) (float64, entity.DrawdownPeriod) {
	var (
		maxDD      float64
		peak       = InitialEquity
		troughIdx  = -1
		troughPeak float64
	)
	for i, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		dd := (peak - p.Equity) / peak * 100
		if dd > maxDD {
			maxDD = dd
			troughIdx = i
			troughPeak = peak
		}
	}

	var period entity.DrawdownPeriod
	if troughIdx >= 0 {
		period.TroughDate = curve[troughIdx].EventDate
		for i := troughIdx; i >= 0; i-- {
			if curve[i].Equity == troughPeak {
				period.PeakDate = curve[i].EventDate
				break
			}
		}
		if period.PeakDate.IsZero() {
			// ピークが開始値(100)のままカーブ上に現れない場合は先頭を使う。
			period.PeakDate = curve[0].EventDate
		}
	}
	return maxDD, period
}
