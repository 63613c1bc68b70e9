// Package dto はeventstudyフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// WindowConfigReq はイベントウィンドウ幅の指定です。
type WindowConfigReq struct {
	DaysBefore      int  `json:"daysBefore"`
	DaysAfter       int  `json:"daysAfter"`
	IncludeEventDay bool `json:"includeEventDay"`
}

// TradeConfigReq はエントリー/イグジットの指定です。
// EntryType は "T-1_CLOSE" のような文字列形式です。
type TradeConfigReq struct {
	EntryType string `json:"entryType"`
	DaysAfter int    `json:"daysAfter"`
}

// FiltersReq は分析対象イベントの絞り込み条件です。
type FiltersReq struct {
	ExcludeYears   []int `json:"excludeYears,omitempty"`
	MinOccurrences int   `json:"minOccurrences,omitempty"`
}

// AnalysisReq は/analysis/eventsエンドポイントのリクエストボディです。
// 日付は "2006-01-02" 形式の文字列です。
type AnalysisReq struct {
	Symbol          string          `json:"symbol" binding:"required"`
	EventNames      []string        `json:"eventNames,omitempty"`
	EventCategories []string        `json:"eventCategories,omitempty"`
	Country         string          `json:"country,omitempty"`
	StartDate       string          `json:"startDate" binding:"required"`
	EndDate         string          `json:"endDate" binding:"required"`
	WindowConfig    WindowConfigReq `json:"windowConfig"`
	TradeConfig     TradeConfigReq  `json:"tradeConfig"`
	Filters         FiltersReq      `json:"filters"`
}
