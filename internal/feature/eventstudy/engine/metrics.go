package engine

import (
	"math"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// ProfitFactorNoLosses は損失ゼロかつ利益ありの場合のプロフィット
// ファクター番兵値です。ゼロ除算を避けつつ「未定義/極めて良好」を
// 示し、消費側のソート・比較互換性を保ちます。
const ProfitFactorNoLosses = 999.0

// SegmentReturns は有効な全ウィンドウの日次リターンを相対日の符号で
// イベント前/当日/後の3区分に分割して集計します。観測ゼロの区分は
// 失敗せず全ゼロの統計を報告します。
func SegmentReturns(validWindows []entity.EventWindow) entity.SegmentedStats {
	var pre, event, post []float64
	for _, w := range validWindows {
		for _, b := range w.Bars {
			switch {
			case b.RelativeDay < 0:
				pre = append(pre, b.ReturnPercentage)
			case b.RelativeDay == 0:
				event = append(event, b.ReturnPercentage)
			default:
				post = append(post, b.ReturnPercentage)
			}
		}
	}
	return entity.SegmentedStats{
		PreEvent:  segmentStats(pre),
		EventDay:  segmentStats(event),
		PostEvent: segmentStats(post),
	}
}

func segmentStats(returns []float64) entity.SegmentStats {
	if len(returns) == 0 {
		return entity.SegmentStats{}
	}
	positive := 0
	for _, r := range returns {
		if r > 0 {
			positive++
		}
	}
	return entity.SegmentStats{
		Count:        len(returns),
		AvgReturn:    mean(returns),
		MedianReturn: median(returns),
		StdDev:       stdDev(returns),
		WinRate:      100 * float64(positive) / float64(len(returns)),
	}
}

// AggregateMetrics はトレード集合全体のポートフォリオ型統計を計算します。
// trades が空の場合は nil を返します。
func AggregateMetrics(trades []entity.Trade) *entity.AggregatedMetrics {
	if len(trades) == 0 {
		return nil
	}

	returns := make([]float64, 0, len(trades))
	var (
		winners     int
		grossProfit float64
		grossLoss   float64
		best        = trades[0]
		worst       = trades[0]
	)
	for _, t := range trades {
		returns = append(returns, t.ReturnPercentage)
		if t.IsProfitable {
			winners++
		}
		if t.ReturnPercentage > 0 {
			grossProfit += t.ReturnPercentage
		} else {
			grossLoss += t.ReturnPercentage
		}
		if t.ReturnPercentage > best.ReturnPercentage {
			best = t
		}
		if t.ReturnPercentage < worst.ReturnPercentage {
			worst = t
		}
	}
	grossLoss = math.Abs(grossLoss)

	avg := mean(returns)
	sd := stdDev(returns)

	var profitFactor float64
	switch {
	case grossLoss > 0:
		profitFactor = grossProfit / grossLoss
	case grossProfit > 0:
		profitFactor = ProfitFactorNoLosses
	default:
		profitFactor = 0
	}

	// リスクフリーレートは0と仮定します。
	var sharpe float64
	if sd > 0 {
		sharpe = avg / sd
	}

	var sortino float64
	if dd := downsideDeviation(returns, sd); dd > 0 {
		sortino = avg / dd
	}

	equity := BuildEquityCurve(trades)

	return &entity.AggregatedMetrics{
		TotalTrades:   len(trades),
		WinningTrades: winners,
		LosingTrades:  len(trades) - winners,
		WinRate:       100 * float64(winners) / float64(len(trades)),
		AvgReturn:     avg,
		MedianReturn:  median(returns),
		StdDev:        sd,
		ProfitFactor:  profitFactor,
		SharpeRatio:   sharpe,
		SortinoRatio:  sortino,
		MaxDrawdown:   MaxDrawdown(equity),
		BestEvent:     entity.EventRef{Date: best.EventDate, Return: best.ReturnPercentage},
		WorstEvent:    entity.EventRef{Date: worst.EventDate, Return: worst.ReturnPercentage},
	}
}

// downsideDeviation は負のリターンのみの母標準偏差です。負のリターンが
// 存在しない場合は全体の標準偏差にフォールバックします。
func downsideDeviation(returns []float64, fullStdDev float64) float64 {
	var negatives []float64
	for _, r := range returns {
		if r < 0 {
			negatives = append(negatives, r)
		}
	}
	if len(negatives) == 0 {
		return fullStdDev
	}
	return stdDev(negatives)
}

// AggregateMetricsLegacy は旧サービス互換の拡張指標を計算します。
// 期待値(=平均リターン)、トータルリターン、経過年数ベースのCAGR、
// ドローダウン期間を追加で報告します。
func AggregateMetricsLegacy(trades []entity.Trade) *entity.LegacyMetrics {
	core := AggregateMetrics(trades)
	if core == nil {
		return nil
	}

	equity := BuildEquityCurve(trades)
	_, period := MaxDrawdownPeriod(equity)

	finalEquity := InitialEquity
	if len(equity) > 0 {
		finalEquity = equity[len(equity)-1].Equity
	}

	first := equity[0].EventDate
	last := equity[len(equity)-1].EventDate
	years := last.Sub(first).Hours() / 24 / 365.25

	var cagr float64
	if years > 0 {
		cagr = (math.Pow(finalEquity/InitialEquity, 1/years) - 1) * 100
	}

	return &entity.LegacyMetrics{
		AggregatedMetrics: *core,
		Expectancy:        core.AvgReturn,
		TotalReturn:       finalEquity - InitialEquity,
		CAGR:              cagr,
		DrawdownPeriod:    period,
	}
}
