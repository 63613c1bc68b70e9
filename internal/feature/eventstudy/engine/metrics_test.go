package engine

import (
	"math"
	"testing"
	"time"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// tradeWith はテスト用の最小トレードを生成します。
func tradeWith(date time.Time, returnPct float64) entity.Trade {
	return entity.Trade{
		EventName:        "Union Budget Day",
		EventDate:        date,
		Year:             date.Year(),
		ReturnPercentage: returnPct,
		IsProfitable:     returnPct > 0,
	}
}

// TestBuildEquityCurve は逐次複利の連結を検証します。
// [+10%, -5%, +20%] ⇒ equity系列 [110, 104.5, 125.4]。
func TestBuildEquityCurve(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 10),
		tradeWith(day(2023, 2, 1), -5),
		tradeWith(day(2024, 2, 1), 20),
	}

	curve := BuildEquityCurve(trades)
	if len(curve) != 3 {
		t.Fatalf("got %d points, want 3", len(curve))
	}

	want := []float64{110, 104.5, 125.4}
	for i, p := range curve {
		if !almostEqual(p.Equity, want[i]) {
			t.Errorf("equity[%d] = %v, want %v", i, p.Equity, want[i])
		}
	}

	// リンク不変条件: equity[i+1] = equity[i] * (1 + r/100)
	prev := InitialEquity
	for i, p := range curve {
		if !almostEqual(p.Equity, prev*(1+p.ReturnPercentage/100)) {
			t.Errorf("equity linkage broken at %d", i)
		}
		prev = p.Equity
	}
}

// TestBuildEquityCurve_SortsByDate は入力順に関わらず日付昇順で
// 複利連結されることを検証します。
func TestBuildEquityCurve_SortsByDate(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2024, 2, 1), 20),
		tradeWith(day(2022, 2, 1), 10),
		tradeWith(day(2023, 2, 1), -5),
	}
	curve := BuildEquityCurve(trades)
	if !curve[0].EventDate.Equal(day(2022, 2, 1)) || !almostEqual(curve[2].Equity, 125.4) {
		t.Errorf("curve not sorted by event date: %+v", curve)
	}
}

func TestMaxDrawdown(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 10),
		tradeWith(day(2023, 2, 1), -5),
		tradeWith(day(2024, 2, 1), 20),
	}
	curve := BuildEquityCurve(trades)

	// ピーク110からトラフ104.5への下落 = 5.0%
	if got := MaxDrawdown(curve); !almostEqual(got, 5.0) {
		t.Errorf("MaxDrawdown = %v, want 5.0", got)
	}
}

// TestMaxDrawdown_ZeroWhenNonDecreasing は単調非減少のカーブで
// ドローダウンが0になることを検証します。
func TestMaxDrawdown_ZeroWhenNonDecreasing(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 5),
		tradeWith(day(2023, 2, 1), 0),
		tradeWith(day(2024, 2, 1), 3),
	}
	if got := MaxDrawdown(BuildEquityCurve(trades)); got != 0 {
		t.Errorf("MaxDrawdown = %v, want 0", got)
	}
}

func TestMaxDrawdownPeriod(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2021, 2, 1), 10), // 110 ピーク
		tradeWith(day(2022, 2, 1), -5), // 104.5
		tradeWith(day(2023, 2, 1), -2), // 102.41 トラフ
		tradeWith(day(2024, 2, 1), 30),
	}
	dd, period := MaxDrawdownPeriod(BuildEquityCurve(trades))
	if !almostEqual(dd, (110-102.41)/110*100) {
		t.Errorf("drawdown = %v", dd)
	}
	if !period.PeakDate.Equal(day(2021, 2, 1)) {
		t.Errorf("PeakDate = %v, want 2021-02-01", period.PeakDate)
	}
	if !period.TroughDate.Equal(day(2023, 2, 1)) {
		t.Errorf("TroughDate = %v, want 2023-02-01", period.TroughDate)
	}
}

func TestAggregateMetrics(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 10),
		tradeWith(day(2023, 2, 1), -5),
		tradeWith(day(2024, 2, 1), 20),
	}

	m := AggregateMetrics(trades)
	if m == nil {
		t.Fatal("metrics should not be nil")
	}

	if m.TotalTrades != 3 || m.WinningTrades != 2 || m.LosingTrades != 1 {
		t.Errorf("counts: %+v", m)
	}
	if !almostEqual(m.WinRate, 100.0*2/3) {
		t.Errorf("WinRate = %v", m.WinRate)
	}
	if !almostEqual(m.AvgReturn, 25.0/3) {
		t.Errorf("AvgReturn = %v", m.AvgReturn)
	}
	if !almostEqual(m.MedianReturn, 10) {
		t.Errorf("MedianReturn = %v", m.MedianReturn)
	}
	// プロフィットファクター = 30 / 5
	if !almostEqual(m.ProfitFactor, 6) {
		t.Errorf("ProfitFactor = %v, want 6", m.ProfitFactor)
	}
	if !almostEqual(m.SharpeRatio, m.AvgReturn/m.StdDev) {
		t.Errorf("SharpeRatio = %v", m.SharpeRatio)
	}
	if !almostEqual(m.MaxDrawdown, 5.0) {
		t.Errorf("MaxDrawdown = %v, want 5.0", m.MaxDrawdown)
	}
	if !m.BestEvent.Date.Equal(day(2024, 2, 1)) || !almostEqual(m.BestEvent.Return, 20) {
		t.Errorf("BestEvent = %+v", m.BestEvent)
	}
	if !m.WorstEvent.Date.Equal(day(2023, 2, 1)) || !almostEqual(m.WorstEvent.Return, -5) {
		t.Errorf("WorstEvent = %+v", m.WorstEvent)
	}
}

func TestAggregateMetrics_EmptyTrades(t *testing.T) {
	if got := AggregateMetrics(nil); got != nil {
		t.Errorf("expected nil for empty trades, got %+v", got)
	}
}

// TestAggregateMetrics_AllPositive は損失ゼロの集合で番兵値と
// Sortinoのフォールバックを検証します。
func TestAggregateMetrics_AllPositive(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 4),
		tradeWith(day(2023, 2, 1), 8),
		tradeWith(day(2024, 2, 1), 6),
	}
	m := AggregateMetrics(trades)

	if !almostEqual(m.ProfitFactor, ProfitFactorNoLosses) {
		t.Errorf("ProfitFactor = %v, want sentinel %v", m.ProfitFactor, ProfitFactorNoLosses)
	}
	// 負のリターンが無いので下方偏差は全体の標準偏差にフォールバック
	if !almostEqual(m.SortinoRatio, m.AvgReturn/m.StdDev) {
		t.Errorf("SortinoRatio = %v, want %v", m.SortinoRatio, m.AvgReturn/m.StdDev)
	}
	if !almostEqual(m.SortinoRatio, m.SharpeRatio) {
		t.Error("with no losses Sortino should equal Sharpe")
	}
}

// TestAggregateMetrics_AllZero は全トレードがゼロリターンの縮退ケースです。
func TestAggregateMetrics_AllZero(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 0),
		tradeWith(day(2023, 2, 1), 0),
	}
	m := AggregateMetrics(trades)
	if m.ProfitFactor != 0 || m.SharpeRatio != 0 || m.SortinoRatio != 0 {
		t.Errorf("degenerate metrics should be zero: %+v", m)
	}
	if m.WinRate != 0 {
		t.Errorf("WinRate = %v, want 0 (zero return is not a win)", m.WinRate)
	}
}

func TestAggregateMetrics_Sortino(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2021, 2, 1), 10),
		tradeWith(day(2022, 2, 1), -4),
		tradeWith(day(2023, 2, 1), -8),
		tradeWith(day(2024, 2, 1), 6),
	}
	m := AggregateMetrics(trades)

	// 下方偏差 = 母stdev({-4, -8}) = 2
	want := m.AvgReturn / 2
	if !almostEqual(m.SortinoRatio, want) {
		t.Errorf("SortinoRatio = %v, want %v", m.SortinoRatio, want)
	}
}

func TestSegmentReturns(t *testing.T) {
	windows := []entity.EventWindow{
		returnsWindow(map[int]float64{-1: 1.0, 0: 2.0, 1: -3.0}),
		returnsWindow(map[int]float64{-1: -1.0, 0: 4.0, 1: 5.0}),
	}
	s := SegmentReturns(windows)

	if s.PreEvent.Count != 2 || !almostEqual(s.PreEvent.AvgReturn, 0) || !almostEqual(s.PreEvent.WinRate, 50) {
		t.Errorf("PreEvent = %+v", s.PreEvent)
	}
	if s.EventDay.Count != 2 || !almostEqual(s.EventDay.AvgReturn, 3) || !almostEqual(s.EventDay.WinRate, 100) {
		t.Errorf("EventDay = %+v", s.EventDay)
	}
	if s.PostEvent.Count != 2 || !almostEqual(s.PostEvent.AvgReturn, 1) || !almostEqual(s.PostEvent.WinRate, 50) {
		t.Errorf("PostEvent = %+v", s.PostEvent)
	}
}

// TestSegmentReturns_EmptySegments は観測ゼロの区分が全ゼロ統計になる
// ことを検証します。
func TestSegmentReturns_EmptySegments(t *testing.T) {
	s := SegmentReturns(nil)
	if s.PreEvent != (entity.SegmentStats{}) || s.EventDay != (entity.SegmentStats{}) || s.PostEvent != (entity.SegmentStats{}) {
		t.Errorf("empty segments should be all-zero: %+v", s)
	}
}

func TestAggregateMetricsLegacy(t *testing.T) {
	trades := []entity.Trade{
		tradeWith(day(2022, 2, 1), 10),
		tradeWith(day(2023, 2, 1), -5),
		tradeWith(day(2024, 2, 1), 20),
	}
	m := AggregateMetricsLegacy(trades)
	if m == nil {
		t.Fatal("metrics should not be nil")
	}

	if !almostEqual(m.Expectancy, m.AvgReturn) {
		t.Errorf("Expectancy = %v, want %v", m.Expectancy, m.AvgReturn)
	}
	if !almostEqual(m.TotalReturn, 25.4) {
		t.Errorf("TotalReturn = %v, want 25.4", m.TotalReturn)
	}

	// 2年間で 100 → 125.4: CAGR = (1.254^(1/years) - 1) * 100
	years := day(2024, 2, 1).Sub(day(2022, 2, 1)).Hours() / 24 / 365.25
	wantCAGR := (math.Pow(1.254, 1/years) - 1) * 100
	if !almostEqual(m.CAGR, wantCAGR) {
		t.Errorf("CAGR = %v, want %v", m.CAGR, wantCAGR)
	}

	if !m.DrawdownPeriod.PeakDate.Equal(day(2022, 2, 1)) || !m.DrawdownPeriod.TroughDate.Equal(day(2023, 2, 1)) {
		t.Errorf("DrawdownPeriod = %+v", m.DrawdownPeriod)
	}
}

// TestAggregateMetricsLegacy_SingleTrade は経過年数0のときCAGRが0になる
// ことを検証します。
func TestAggregateMetricsLegacy_SingleTrade(t *testing.T) {
	m := AggregateMetricsLegacy([]entity.Trade{tradeWith(day(2024, 2, 1), 10)})
	if m.CAGR != 0 {
		t.Errorf("CAGR = %v, want 0 when elapsed years <= 0", m.CAGR)
	}
	if !almostEqual(m.TotalReturn, 10) {
		t.Errorf("TotalReturn = %v, want 10", m.TotalReturn)
	}
}
