package engine

import (
	"sort"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// BuildAverageCurve は有効な全ウィンドウの日次リターンを相対日ごとに
// バケットし、イベント横断の平均リターンカーブを構築します。
//
// バケットにはトレードのリターンではなく各バーの日次リターンが入るため、
// 1相対日に複数イベントが寄与します。寄与ゼロのバケットは出力から
// 完全に落とします（ゼロ埋めしない）。バリデータの完全性検査の下では
// 起こり得ませんが、規則として防御的に保持します。
func BuildAverageCurve(validWindows []entity.EventWindow, cfg WindowConfig) []entity.CurvePoint {
	buckets := make(map[int][]float64, cfg.Width())
	for d := -cfg.DaysBefore; d <= cfg.DaysAfter; d++ {
		buckets[d] = nil
	}

	for _, w := range validWindows {
		for _, b := range w.Bars {
			if _, ok := buckets[b.RelativeDay]; !ok {
				continue
			}
			buckets[b.RelativeDay] = append(buckets[b.RelativeDay], b.ReturnPercentage)
		}
	}

	curve := make([]entity.CurvePoint, 0, cfg.Width())
	for d := -cfg.DaysBefore; d <= cfg.DaysAfter; d++ {
		returns := buckets[d]
		if len(returns) == 0 {
			continue
		}
		minR, maxR := returns[0], returns[0]
		for _, r := range returns {
			if r < minR {
				minR = r
			}
			if r > maxR {
				maxR = r
			}
		}
		curve = append(curve, entity.CurvePoint{
			RelativeDay:  d,
			AvgReturn:    mean(returns),
			MedianReturn: median(returns),
			StdDev:       stdDev(returns),
			Count:        len(returns),
			MinReturn:    minR,
			MaxReturn:    maxR,
			IsEventDay:   d == 0,
		})
	}

	sort.Slice(curve, func(i, j int) bool { return curve[i].RelativeDay < curve[j].RelativeDay })
	return curve
}
