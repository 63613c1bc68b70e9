// Package usecase はイベントスタディ分析のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	"seasonality_backend/internal/feature/eventstudy/domain"
	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	"seasonality_backend/internal/feature/eventstudy/engine"
)

const (
	// CalendarBufferDays は境界付近のウィンドウを解決できるよう、
	// 要求レンジの前後に加える暦日バッファです。
	CalendarBufferDays = 60
	// DefaultMinOccurrences は分析に最低限必要な有効イベント数です。
	DefaultMinOccurrences = 3
)

// SessionRepository は価格系列プロバイダを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SessionRepository interface {
	// FindRange は銘柄の取引セッションを日付昇順で検索します。
	FindRange(ctx context.Context, symbol string, from, to time.Time) ([]entity.TradingSession, error)
}

// EventRepository はイベント発生プロバイダを抽象化します。
type EventRepository interface {
	// FindOccurrences はフィルタに合致するイベント発生を日付昇順で返します。
	FindOccurrences(ctx context.Context, filter entity.EventFilter) ([]entity.EventOccurrence, error)

	// ListDefinitions は登録済みイベントの定義一覧を返します。
	ListDefinitions(ctx context.Context) ([]entity.EventDefinition, error)
}

// TradeConfig はエントリー/イグジット指定のワイヤ形式です。
// EntryType は "T-1_CLOSE" のような文字列で、リクエスト境界で一度だけ
// パースされます。
type TradeConfig struct {
	EntryType string
	DaysAfter int
}

// AnalysisFilters は分析対象イベントの絞り込み条件です。
type AnalysisFilters struct {
	ExcludeYears   []int
	MinOccurrences int
}

// AnalysisRequest はイベント分析のリクエストです。
type AnalysisRequest struct {
	Symbol          string
	EventNames      []string
	EventCategories []string
	Country         string
	StartDate       time.Time
	EndDate         time.Time
	Window          engine.WindowConfig
	Trade           TradeConfig
	Filters         AnalysisFilters
}

// eventAnalysisUsecase はイベントスタディ分析のユースケースです。
// 全コンポーネントは入力に対する純粋関数なので、独立したリクエスト間で
// ロックなしに並行実行できます。
type eventAnalysisUsecase struct {
	sessions SessionRepository
	events   EventRepository
}

// NewEventAnalysisUsecase はeventAnalysisUsecaseの新しいインスタンスを生成します。
func NewEventAnalysisUsecase(sessions SessionRepository, events EventRepository) *eventAnalysisUsecase {
	return &eventAnalysisUsecase{sessions: sessions, events: events}
}

// Analyze は指定銘柄の価格履歴をイベント相対日タイムラインに整列し、
// イベント横断の統計とポートフォリオ型指標を計算します。
func (u *eventAnalysisUsecase) Analyze(ctx context.Context, req AnalysisRequest) (*entity.AnalysisResult, error) {
	p, err := u.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return &entity.AnalysisResult{
		EventSummary:      p.summary,
		AverageEventCurve: p.curve,
		SegmentedStats:    p.segments,
		EventOccurrences:  p.trades,
		AggregatedMetrics: engine.AggregateMetrics(p.trades),
		EquityCurve:       p.equity,
	}, nil
}

// AnalyzeLegacy は旧分析サービス互換のレスポンスを生成します。
// 分布解析と拡張指標（期待値・トータルリターン・CAGR・ドローダウン期間）
// を追加で含みます。
func (u *eventAnalysisUsecase) AnalyzeLegacy(ctx context.Context, req AnalysisRequest) (*entity.LegacyAnalysisResult, error) {
	p, err := u.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return &entity.LegacyAnalysisResult{
		EventSummary:      p.summary,
		AverageEventCurve: p.curve,
		SegmentedStats:    p.segments,
		EventOccurrences:  p.trades,
		AggregatedMetrics: engine.AggregateMetricsLegacy(p.trades),
		EquityCurve:       p.equity,
		Distribution:      engine.AnalyzeDistribution(p.trades),
	}, nil
}

// ListEventDefinitions はダッシュボードのフィルタ用にイベント定義一覧を返します。
func (u *eventAnalysisUsecase) ListEventDefinitions(ctx context.Context) ([]entity.EventDefinition, error) {
	return u.events.ListDefinitions(ctx)
}

// pipeline は両バリアント共通の中間結果です。
type pipeline struct {
	summary  entity.EventSummary
	curve    []entity.CurvePoint
	segments entity.SegmentedStats
	trades   []entity.Trade
	equity   []entity.EquityPoint
}

func (u *eventAnalysisUsecase) run(ctx context.Context, req AnalysisRequest) (*pipeline, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	entry := engine.ParseEntryType(req.Trade.EntryType)
	exitDay := req.Trade.DaysAfter

	// ウィンドウが境界で解決できるよう、暦日バッファ分レンジを広げてから
	// 価格系列を取得します。
	from := req.StartDate.AddDate(0, 0, -CalendarBufferDays)
	to := req.EndDate.AddDate(0, 0, CalendarBufferDays)
	sessions, err := u.sessions.FindRange(ctx, req.Symbol, from, to)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrDataUnavailable, req.Symbol)
	}

	occurrences, err := u.events.FindOccurrences(ctx, entity.EventFilter{
		Names:        req.EventNames,
		Categories:   req.EventCategories,
		Country:      req.Country,
		From:         req.StartDate,
		To:           req.EndDate,
		ExcludeYears: req.Filters.ExcludeYears,
	})
	if err != nil {
		return nil, err
	}

	cal, err := engine.NewCalendar(sessions)
	if err != nil {
		return nil, err
	}

	windows := engine.BuildWindows(occurrences, cal, req.Window)
	windows = engine.ValidateWindows(windows, req.Window, entry, exitDay)
	valid := engine.ValidOnly(windows)

	minOccurrences := req.Filters.MinOccurrences
	if minOccurrences <= 0 {
		minOccurrences = DefaultMinOccurrences
	}
	if len(valid) < minOccurrences {
		return nil, &domain.InsufficientEventsError{
			Found:    len(occurrences),
			Valid:    len(valid),
			Required: minOccurrences,
			Excluded: len(occurrences) - len(valid),
		}
	}

	trades := engine.ComputeTrades(valid, entry, exitDay)

	return &pipeline{
		summary: entity.EventSummary{
			TotalEventsFound: len(occurrences),
			ValidEvents:      len(valid),
			ExcludedEvents:   len(occurrences) - len(valid),
			ExclusionReasons: engine.CountExclusions(windows),
		},
		curve:    engine.BuildAverageCurve(valid, req.Window),
		segments: engine.SegmentReturns(valid),
		trades:   trades,
		equity:   engine.BuildEquityCurve(trades),
	}, nil
}

// validateRequest は設定エラーをデータアクセス前に検出します。
func validateRequest(req AnalysisRequest) error {
	if req.Symbol == "" {
		return domain.ErrSymbolRequired
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return domain.ErrDateRangeRequired
	}
	if len(req.EventNames) == 0 && len(req.EventCategories) == 0 {
		return domain.ErrEventFilterRequired
	}
	if req.Window.DaysBefore < 0 || req.Window.DaysAfter < 0 {
		return domain.ErrNegativeWindowDays
	}
	return nil
}
