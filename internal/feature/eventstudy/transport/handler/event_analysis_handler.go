// Package handler はeventstudyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"seasonality_backend/internal/feature/eventstudy/domain"
	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	"seasonality_backend/internal/feature/eventstudy/engine"
	"seasonality_backend/internal/feature/eventstudy/transport/http/dto"
	"seasonality_backend/internal/feature/eventstudy/usecase"
)

// dateLayout はリクエスト/レスポンスの日付形式です。
const dateLayout = "2006-01-02"

// EventAnalysisUsecase はイベント分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type EventAnalysisUsecase interface {
	Analyze(ctx context.Context, req usecase.AnalysisRequest) (*entity.AnalysisResult, error)
	AnalyzeLegacy(ctx context.Context, req usecase.AnalysisRequest) (*entity.LegacyAnalysisResult, error)
	ListEventDefinitions(ctx context.Context) ([]entity.EventDefinition, error)
}

// EventAnalysisHandler はイベント分析のHTTPリクエストを処理します。
type EventAnalysisHandler struct {
	uc EventAnalysisUsecase
}

// NewEventAnalysisHandler は指定されたusecaseでEventAnalysisHandlerの新しいインスタンスを生成します。
func NewEventAnalysisHandler(uc EventAnalysisUsecase) *EventAnalysisHandler {
	return &EventAnalysisHandler{uc: uc}
}

// Analyze はV2イベント分析エンドポイントを処理します。
//
// エンドポイント例:
// POST /analysis/events
func (h *EventAnalysisHandler) Analyze(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	result, err := h.uc.Analyze(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AnalysisResp{
		EventSummary:      toSummaryResp(result.EventSummary),
		AverageEventCurve: toCurveResp(result.AverageEventCurve),
		SegmentedStats:    toSegmentedResp(result.SegmentedStats),
		EventOccurrences:  toTradesResp(result.EventOccurrences),
		AggregatedMetrics: toMetricsResp(result.AggregatedMetrics),
		EquityCurve:       toEquityResp(result.EquityCurve),
	})
}

// AnalyzeLegacy はレガシー互換のイベント分析エンドポイントを処理します。
// 分布解析と拡張指標を追加で返します。
//
// エンドポイント例:
// POST /analysis/events/legacy
func (h *EventAnalysisHandler) AnalyzeLegacy(c *gin.Context) {
	req, ok := h.bindRequest(c)
	if !ok {
		return
	}

	result, err := h.uc.AnalyzeLegacy(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LegacyAnalysisResp{
		EventSummary:      toSummaryResp(result.EventSummary),
		AverageEventCurve: toCurveResp(result.AverageEventCurve),
		SegmentedStats:    toSegmentedResp(result.SegmentedStats),
		EventOccurrences:  toTradesResp(result.EventOccurrences),
		AggregatedMetrics: toLegacyMetricsResp(result.AggregatedMetrics),
		EquityCurve:       toEquityResp(result.EquityCurve),
		Distribution:      toDistributionResp(result.Distribution),
	})
}

// ListEvents は登録済みイベントの定義一覧を返します。
//
// エンドポイント例:
// GET /events
func (h *EventAnalysisHandler) ListEvents(c *gin.Context) {
	defs, err := h.uc.ListEventDefinitions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.ErrorResp{Error: err.Error()})
		return
	}
	out := make([]dto.EventDefinitionResp, 0, len(defs))
	for _, d := range defs {
		out = append(out, dto.EventDefinitionResp{Name: d.Name, Category: d.Category, Country: d.Country})
	}
	c.JSON(http.StatusOK, out)
}

// bindRequest はリクエストJSONをバインドし、日付文字列をパースします。
func (h *EventAnalysisHandler) bindRequest(c *gin.Context) (usecase.AnalysisRequest, bool) {
	var req dto.AnalysisReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("analysis validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "invalid request"})
		return usecase.AnalysisRequest{}, false
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "invalid startDate"})
		return usecase.AnalysisRequest{}, false
	}
	end, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: "invalid endDate"})
		return usecase.AnalysisRequest{}, false
	}

	return usecase.AnalysisRequest{
		Symbol:          req.Symbol,
		EventNames:      req.EventNames,
		EventCategories: req.EventCategories,
		Country:         req.Country,
		StartDate:       start,
		EndDate:         end,
		Window: engine.WindowConfig{
			DaysBefore:      req.WindowConfig.DaysBefore,
			DaysAfter:       req.WindowConfig.DaysAfter,
			IncludeEventDay: req.WindowConfig.IncludeEventDay,
		},
		Trade: usecase.TradeConfig{
			EntryType: req.TradeConfig.EntryType,
			DaysAfter: req.TradeConfig.DaysAfter,
		},
		Filters: usecase.AnalysisFilters{
			ExcludeYears:   req.Filters.ExcludeYears,
			MinOccurrences: req.Filters.MinOccurrences,
		},
	}, true
}

// writeError はドメインエラーをHTTPステータスに対応付けます。
// 設定エラーは400、データ欠如は404、有効イベント不足は422です。
func (h *EventAnalysisHandler) writeError(c *gin.Context, err error) {
	var insufficient *domain.InsufficientEventsError
	switch {
	case errors.Is(err, domain.ErrSymbolRequired),
		errors.Is(err, domain.ErrDateRangeRequired),
		errors.Is(err, domain.ErrEventFilterRequired),
		errors.Is(err, domain.ErrNegativeWindowDays):
		c.JSON(http.StatusBadRequest, dto.ErrorResp{Error: err.Error()})
	case errors.Is(err, domain.ErrDataUnavailable):
		c.JSON(http.StatusNotFound, dto.ErrorResp{Error: err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResp{Error: err.Error()})
	default:
		slog.Error("event analysis failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadGateway, dto.ErrorResp{Error: err.Error()})
	}
}

func toSummaryResp(s entity.EventSummary) dto.EventSummaryResp {
	return dto.EventSummaryResp{
		TotalEventsFound: s.TotalEventsFound,
		ValidEvents:      s.ValidEvents,
		ExcludedEvents:   s.ExcludedEvents,
		ExclusionReasons: s.ExclusionReasons,
	}
}

func toCurveResp(curve []entity.CurvePoint) []dto.CurvePointResp {
	out := make([]dto.CurvePointResp, 0, len(curve))
	for _, p := range curve {
		out = append(out, dto.CurvePointResp{
			RelativeDay:  p.RelativeDay,
			AvgReturn:    p.AvgReturn,
			MedianReturn: p.MedianReturn,
			StdDev:       p.StdDev,
			Count:        p.Count,
			MinReturn:    p.MinReturn,
			MaxReturn:    p.MaxReturn,
			IsEventDay:   p.IsEventDay,
		})
	}
	return out
}

func toSegmentResp(s entity.SegmentStats) dto.SegmentStatsResp {
	return dto.SegmentStatsResp{
		Count:        s.Count,
		AvgReturn:    s.AvgReturn,
		MedianReturn: s.MedianReturn,
		StdDev:       s.StdDev,
		WinRate:      s.WinRate,
	}
}

func toSegmentedResp(s entity.SegmentedStats) dto.SegmentedStatsResp {
	return dto.SegmentedStatsResp{
		PreEvent:  toSegmentResp(s.PreEvent),
		EventDay:  toSegmentResp(s.EventDay),
		PostEvent: toSegmentResp(s.PostEvent),
	}
}

func toTradesResp(trades []entity.Trade) []dto.TradeResp {
	out := make([]dto.TradeResp, 0, len(trades))
	for _, t := range trades {
		out = append(out, dto.TradeResp{
			EventName:        t.EventName,
			EventDate:        t.EventDate.UTC().Format(dateLayout),
			Year:             t.Year,
			Category:         t.Category,
			EntryDate:        t.EntryDate.UTC().Format(dateLayout),
			EntryPrice:       t.EntryPrice,
			ExitDate:         t.ExitDate.UTC().Format(dateLayout),
			ExitPrice:        t.ExitPrice,
			AbsoluteReturn:   t.AbsoluteReturn,
			ReturnPercentage: t.ReturnPercentage,
			MFE:              t.MFE,
			MAE:              t.MAE,
			HoldingDays:      t.HoldingDays,
			IsProfitable:     t.IsProfitable,
		})
	}
	return out
}

func toMetricsResp(m *entity.AggregatedMetrics) *dto.AggregatedMetricsResp {
	if m == nil {
		return nil
	}
	return &dto.AggregatedMetricsResp{
		TotalTrades:   m.TotalTrades,
		WinningTrades: m.WinningTrades,
		LosingTrades:  m.LosingTrades,
		WinRate:       m.WinRate,
		AvgReturn:     m.AvgReturn,
		MedianReturn:  m.MedianReturn,
		StdDev:        m.StdDev,
		ProfitFactor:  m.ProfitFactor,
		SharpeRatio:   m.SharpeRatio,
		SortinoRatio:  m.SortinoRatio,
		MaxDrawdown:   m.MaxDrawdown,
		BestEvent:     dto.EventRefResp{Date: m.BestEvent.Date.UTC().Format(dateLayout), Return: m.BestEvent.Return},
		WorstEvent:    dto.EventRefResp{Date: m.WorstEvent.Date.UTC().Format(dateLayout), Return: m.WorstEvent.Return},
	}
}

func toLegacyMetricsResp(m *entity.LegacyMetrics) *dto.LegacyMetricsResp {
	if m == nil {
		return nil
	}
	return &dto.LegacyMetricsResp{
		AggregatedMetricsResp: *toMetricsResp(&m.AggregatedMetrics),
		Expectancy:            m.Expectancy,
		TotalReturn:           m.TotalReturn,
		CAGR:                  m.CAGR,
		PeakDate:              m.DrawdownPeriod.PeakDate.UTC().Format(dateLayout),
		TroughDate:            m.DrawdownPeriod.TroughDate.UTC().Format(dateLayout),
	}
}

func toEquityResp(curve []entity.EquityPoint) []dto.EquityPointResp {
	out := make([]dto.EquityPointResp, 0, len(curve))
	for _, p := range curve {
		out = append(out, dto.EquityPointResp{
			EventDate:        p.EventDate.UTC().Format(dateLayout),
			EventName:        p.EventName,
			ReturnPercentage: p.ReturnPercentage,
			Equity:           p.Equity,
		})
	}
	return out
}

func toDistributionResp(d *entity.Distribution) *dto.DistributionResp {
	if d == nil {
		return nil
	}
	bins := make([]dto.HistogramBinResp, 0, len(d.Histogram))
	for _, b := range d.Histogram {
		bins = append(bins, dto.HistogramBinResp{
			Label:      b.Label,
			RangeStart: b.RangeStart,
			RangeEnd:   b.RangeEnd,
			Count:      b.Count,
		})
	}
	outliers := make([]dto.EventRefResp, 0, len(d.Outliers))
	for _, o := range d.Outliers {
		outliers = append(outliers, dto.EventRefResp{Date: o.Date.UTC().Format(dateLayout), Return: o.Return})
	}
	return &dto.DistributionResp{
		Histogram: bins,
		Percentiles: dto.PercentilesResp{
			P10: d.Percentiles.P10,
			P25: d.Percentiles.P25,
			P50: d.Percentiles.P50,
			P75: d.Percentiles.P75,
			P90: d.Percentiles.P90,
		},
		Skewness: d.Skewness,
		Kurtosis: d.Kurtosis,
		Outliers: outliers,
	}
}
