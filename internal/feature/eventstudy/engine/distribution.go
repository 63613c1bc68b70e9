package engine

import (
	"fmt"
	"math"
	"sort"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// HistogramBins はリターン分布ヒストグラムの固定ビン数です。
const HistogramBins = 20

// OutlierStdDevs は外れ値とみなす平均からの乖離（母標準偏差の倍数）です。
const OutlierStdDevs = 2.0

// AnalyzeDistribution はトレードリターンの分布を解析します（レガシー版）。
// 等幅20ビンのヒストグラム、最近順位法の分位点、バイアス補正済みの
// 歪度・過剰尖度、外れ値の検出を行います。
func AnalyzeDistribution(trades []entity.Trade) *entity.Distribution {
	if len(trades) == 0 {
		return nil
	}

	returns := make([]float64, 0, len(trades))
	for _, t := range trades {
		returns = append(returns, t.ReturnPercentage)
	}

	return &entity.Distribution{
		Histogram:   buildHistogram(returns),
		Percentiles: percentiles(returns),
		Skewness:    sampleSkewness(returns),
		Kurtosis:    excessKurtosis(returns),
		Outliers:    findOutliers(trades, returns),
	}
}

func buildHistogram(returns []float64) []entity.HistogramBin {
	minR, maxR := returns[0], returns[0]
	for _, r := range returns {
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
	}

	width := (maxR - minR) / HistogramBins
	if width == 0 {
		// 全リターンが同値の場合は1ビンに退化させます。
		return []entity.HistogramBin{{
			Label:      fmt.Sprintf("%.2f to %.2f", minR, maxR),
			RangeStart: minR,
			RangeEnd:   maxR,
			Count:      len(returns),
		}}
	}

	bins := make([]entity.HistogramBin, HistogramBins)
	for i := range bins {
		start := minR + float64(i)*width
		bins[i] = entity.HistogramBin{
			Label:      fmt.Sprintf("%.2f to %.2f", start, start+width),
			RangeStart: start,
			RangeEnd:   start + width,
		}
	}
	for _, r := range returns {
		idx := int((r - minR) / width)
		if idx >= HistogramBins {
			idx = HistogramBins - 1
		}
		bins[idx].Count++
	}
	return bins
}

// percentiles は最近順位法（floor(n*p)、補間なし）で分位点を計算します。
// 添字は末尾でクランプします。
func percentiles(returns []float64) entity.Percentiles {
	sorted := make([]float64, len(returns))
	copy(sorted, returns)
	sort.Float64s(sorted)

	at := func(p float64) float64 {
		idx := int(math.Floor(float64(len(sorted)) * p))
		if idx >= len(sorted) {
			idx = len(sorted) - 1
		}
		return sorted[idx]
	}
	return entity.Percentiles{
		P10: at(0.10),
		P25: at(0.25),
		P50: at(0.50),
		P75: at(0.75),
		P90: at(0.90),
	}
}

func findOutliers(trades []entity.Trade, returns []float64) []entity.EventRef {
	m := mean(returns)
	sd := stdDev(returns)
	if sd == 0 {
		return nil
	}
	var outliers []entity.EventRef
	for _, t := range trades {
		if math.Abs(t.ReturnPercentage-m) > OutlierStdDevs*sd {
			outliers = append(outliers, entity.EventRef{Date: t.EventDate, Return: t.ReturnPercentage})
		}
	}
	return outliers
}

// sampleSkewness は標準的なバイアス補正済み標本歪度です。
// n < 3 または分散ゼロの場合は 0 を返します。
func sampleSkewness(xs []float64) float64 {
	n := float64(len(xs))
	if n < 3 {
		return 0
	}
	m := mean(xs)
	s := sampleStdDev(xs, m)
	if s == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		z := (x - m) / s
		sum += z * z * z
	}
	return n / ((n - 1) * (n - 2)) * sum
}

// excessKurtosis は標準的なバイアス補正済み標本過剰尖度です。
// n < 4 または分散ゼロの場合は 0 を返します。
func excessKurtosis(xs []float64) float64 {
	n := float64(len(xs))
	if n < 4 {
		return 0
	}
	m := mean(xs)
	s := sampleStdDev(xs, m)
	if s == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		z := (x - m) / s
		sum += z * z * z * z
	}
	return n*(n+1)/((n-1)*(n-2)*(n-3))*sum - 3*(n-1)*(n-1)/((n-2)*(n-3))
}

// sampleStdDev は標本標準偏差（N-1で割る）です。モーメント公式の
// バイアス補正で使うため、ここだけ母偏差ではなく標本偏差を使います。
func sampleStdDev(xs []float64, m float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}
