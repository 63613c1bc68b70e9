package entity

import "time"

// CurvePoint は1相対日分のイベント横断統計です。
type CurvePoint struct {
	RelativeDay  int
	AvgReturn    float64
	MedianReturn float64
	StdDev       float64
	Count        int
	MinReturn    float64
	MaxReturn    float64
	IsEventDay   bool
}

// SegmentStats はイベント前/当日/後のいずれか1区分のリターン統計です。
type SegmentStats struct {
	Count        int
	AvgReturn    float64
	MedianReturn float64
	StdDev       float64
	WinRate      float64
}

// SegmentedStats は相対日の符号で3区分したリターン統計です。
type SegmentedStats struct {
	PreEvent  SegmentStats
	EventDay  SegmentStats
	PostEvent SegmentStats
}

// EventRef は最良/最悪イベントの参照です。
type EventRef struct {
	Date   time.Time
	Return float64
}

// AggregatedMetrics はトレード集合全体のポートフォリオ型統計です。
type AggregatedMetrics struct {
	TotalTrades    int
	WinningTrades  int
	LosingTrades   int
	WinRate        float64
	AvgReturn      float64
	MedianReturn   float64
	StdDev         float64
	ProfitFactor   float64
	SharpeRatio    float64
	SortinoRatio   float64
	MaxDrawdown    float64
	BestEvent      EventRef
	WorstEvent     EventRef
}

// DrawdownPeriod は最大ドローダウンが発生した期間です（レガシー指標）。
type DrawdownPeriod struct {
	PeakDate   time.Time
	TroughDate time.Time
}

// LegacyMetrics は旧分析サービスが追加で報告していた指標です。
type LegacyMetrics struct {
	AggregatedMetrics
	Expectancy     float64
	TotalReturn    float64
	CAGR           float64
	DrawdownPeriod DrawdownPeriod
}

// EquityPoint はエクイティカーブ上の1点です。カーブは equity=100 から始まり、
// トレードを日付昇順に逐次複利で連結します。
type EquityPoint struct {
	EventDate        time.Time
	EventName        string
	ReturnPercentage float64
	Equity           float64
}

// HistogramBin はリターン分布ヒストグラムの1ビンです。
type HistogramBin struct {
	Label      string
	RangeStart float64
	RangeEnd   float64
	Count      int
}

// Percentiles は最近順位法によるリターン分位点です。
type Percentiles struct {
	P10 float64
	P25 float64
	P50 float64
	P75 float64
	P90 float64
}

// Distribution はレガシー分析のリターン分布解析結果です。
type Distribution struct {
	Histogram   []HistogramBin
	Percentiles Percentiles
	Skewness    float64
	Kurtosis    float64
	Outliers    []EventRef
}

// EventSummary は分析対象イベントの内訳です。除外されたウィンドウは
// 理由別にカウントされ、分析全体を中断させません。
type EventSummary struct {
	TotalEventsFound int
	ValidEvents      int
	ExcludedEvents   int
	ExclusionReasons map[string]int
}

// AnalysisResult はV2イベント分析のレスポンスです。
type AnalysisResult struct {
	EventSummary      EventSummary
	AverageEventCurve []CurvePoint
	SegmentedStats    SegmentedStats
	EventOccurrences  []Trade
	AggregatedMetrics *AggregatedMetrics
	EquityCurve       []EquityPoint
}

// LegacyAnalysisResult はレガシー分析のレスポンスで、分布解析と
// 追加指標を含みます。
type LegacyAnalysisResult struct {
	EventSummary      EventSummary
	AverageEventCurve []CurvePoint
	SegmentedStats    SegmentedStats
	EventOccurrences  []Trade
	AggregatedMetrics *LegacyMetrics
	EquityCurve       []EquityPoint
	Distribution      *Distribution
}
