package dto

// EventSummaryResp は分析対象イベントの内訳です。
type EventSummaryResp struct {
	TotalEventsFound int            `json:"totalEventsFound"`
	ValidEvents      int            `json:"validEvents"`
	ExcludedEvents   int            `json:"excludedEvents"`
	ExclusionReasons map[string]int `json:"exclusionReasons"`
}

// CurvePointResp は平均リターンカーブ上の1点です。
type CurvePointResp struct {
	RelativeDay  int     `json:"relativeDay"`
	AvgReturn    float64 `json:"avgReturn"`
	MedianReturn float64 `json:"medianReturn"`
	StdDev       float64 `json:"stdDev"`
	Count        int     `json:"count"`
	MinReturn    float64 `json:"minReturn"`
	MaxReturn    float64 `json:"maxReturn"`
	IsEventDay   bool    `json:"isEventDay"`
}

// SegmentStatsResp は1区分のリターン統計です。
type SegmentStatsResp struct {
	Count        int     `json:"count"`
	AvgReturn    float64 `json:"avgReturn"`
	MedianReturn float64 `json:"medianReturn"`
	StdDev       float64 `json:"stdDev"`
	WinRate      float64 `json:"winRate"`
}

// SegmentedStatsResp はイベント前/当日/後の3区分統計です。
type SegmentedStatsResp struct {
	PreEvent  SegmentStatsResp `json:"preEvent"`
	EventDay  SegmentStatsResp `json:"eventDay"`
	PostEvent SegmentStatsResp `json:"postEvent"`
}

// TradeResp は1イベント分の仮想トレードです。
type TradeResp struct {
	EventName        string  `json:"eventName"`
	EventDate        string  `json:"eventDate"`
	Year             int     `json:"year"`
	Category         string  `json:"category"`
	EntryDate        string  `json:"entryDate"`
	EntryPrice       float64 `json:"entryPrice"`
	ExitDate         string  `json:"exitDate"`
	ExitPrice        float64 `json:"exitPrice"`
	AbsoluteReturn   float64 `json:"absoluteReturn"`
	ReturnPercentage float64 `json:"returnPercentage"`
	MFE              float64 `json:"mfe"`
	MAE              float64 `json:"mae"`
	HoldingDays      int     `json:"holdingDays"`
	IsProfitable     bool    `json:"isProfitable"`
}

// EventRefResp は最良/最悪イベントの参照です。
type EventRefResp struct {
	Date   string  `json:"date"`
	Return float64 `json:"return"`
}

// AggregatedMetricsResp はトレード集合全体の統計です。
type AggregatedMetricsResp struct {
	TotalTrades   int          `json:"totalTrades"`
	WinningTrades int          `json:"winningTrades"`
	LosingTrades  int          `json:"losingTrades"`
	WinRate       float64      `json:"winRate"`
	AvgReturn     float64      `json:"avgReturn"`
	MedianReturn  float64      `json:"medianReturn"`
	StdDev        float64      `json:"stdDev"`
	ProfitFactor  float64      `json:"profitFactor"`
	SharpeRatio   float64      `json:"sharpeRatio"`
	SortinoRatio  float64      `json:"sortinoRatio"`
	MaxDrawdown   float64      `json:"maxDrawdown"`
	BestEvent     EventRefResp `json:"bestEvent"`
	WorstEvent    EventRefResp `json:"worstEvent"`
}

// LegacyMetricsResp は旧サービス互換の拡張統計です。
type LegacyMetricsResp struct {
	AggregatedMetricsResp
	Expectancy  float64 `json:"expectancy"`
	TotalReturn float64 `json:"totalReturn"`
	CAGR        float64 `json:"cagr"`
	PeakDate    string  `json:"drawdownPeakDate"`
	TroughDate  string  `json:"drawdownTroughDate"`
}

// EquityPointResp はエクイティカーブ上の1点です。
type EquityPointResp struct {
	EventDate        string  `json:"eventDate"`
	EventName        string  `json:"eventName"`
	ReturnPercentage float64 `json:"returnPercentage"`
	Equity           float64 `json:"equity"`
}

// HistogramBinResp はリターン分布ヒストグラムの1ビンです。
type HistogramBinResp struct {
	Label      string  `json:"label"`
	RangeStart float64 `json:"rangeStart"`
	RangeEnd   float64 `json:"rangeEnd"`
	Count      int     `json:"count"`
}

// PercentilesResp はリターン分位点です。
type PercentilesResp struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// DistributionResp はリターン分布解析の結果です。
type DistributionResp struct {
	Histogram   []HistogramBinResp `json:"histogram"`
	Percentiles PercentilesResp    `json:"percentiles"`
	Skewness    float64            `json:"skewness"`
	Kurtosis    float64            `json:"kurtosis"`
	Outliers    []EventRefResp     `json:"outliers"`
}

// AnalysisResp は/analysis/eventsエンドポイントのレスポンスです。
type AnalysisResp struct {
	EventSummary      EventSummaryResp       `json:"eventSummary"`
	AverageEventCurve []CurvePointResp       `json:"averageEventCurve"`
	SegmentedStats    SegmentedStatsResp     `json:"segmentedStats"`
	EventOccurrences  []TradeResp            `json:"eventOccurrences"`
	AggregatedMetrics *AggregatedMetricsResp `json:"aggregatedMetrics"`
	EquityCurve       []EquityPointResp      `json:"equityCurve"`
}

// LegacyAnalysisResp は/analysis/events/legacyエンドポイントのレスポンスです。
type LegacyAnalysisResp struct {
	EventSummary      EventSummaryResp   `json:"eventSummary"`
	AverageEventCurve []CurvePointResp   `json:"averageEventCurve"`
	SegmentedStats    SegmentedStatsResp `json:"segmentedStats"`
	EventOccurrences  []TradeResp        `json:"eventOccurrences"`
	AggregatedMetrics *LegacyMetricsResp `json:"aggregatedMetrics"`
	EquityCurve       []EquityPointResp  `json:"equityCurve"`
	Distribution      *DistributionResp  `json:"distribution"`
}

// EventDefinitionResp はイベント定義一覧の1件です。
type EventDefinitionResp struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Country  string `json:"country"`
}

// ErrorResp はエラーレスポンスです。
type ErrorResp struct {
	Error string `json:"error"`
}
