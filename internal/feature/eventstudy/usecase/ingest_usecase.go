package usecase

import (
	"context"
	"log/slog"
	"sort"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	"seasonality_backend/internal/shared/ratelimiter"
)

// ingestOutputSize は1銘柄あたりに取得する日足の件数です。
// 数年分の履歴がないとイベントの発生回数が最低件数に届きません。
const ingestOutputSize = 2500

// MarketRepository は価格データを取得するリポジトリのインターフェイスです。
// 外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MarketRepository interface {
	GetDailySeries(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error)
}

// SessionWriter は取引セッションを永続化するインターフェースです。
type SessionWriter interface {
	UpsertBatch(ctx context.Context, sessions []entity.TradingSession) error
}

// EventWriter はイベント発生を永続化するインターフェースです。
type EventWriter interface {
	UpsertBatch(ctx context.Context, events []entity.EventOccurrence) error
}

// SessionCacheInvalidator は銘柄単位でキャッシュ済みレンジを無効化します。
type SessionCacheInvalidator interface {
	Invalidate(ctx context.Context, symbol string) error
}

// IngestUsecase は外部APIから価格データを取得し、イベントカタログとともに
// データベースへ永続化するユースケースを定義します。
type IngestUsecase struct {
	market      MarketRepository
	sessions    SessionWriter
	events      EventWriter
	cache       SessionCacheInvalidator
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
// cache はnil可で、その場合キャッシュ無効化をスキップします。
func NewIngestUsecase(market MarketRepository, sessions SessionWriter, events EventWriter, cache SessionCacheInvalidator, rateLimiter ratelimiter.RateLimiterInterface) *IngestUsecase {
	return &IngestUsecase{market: market, sessions: sessions, events: events, cache: cache, rateLimiter: rateLimiter}
}

// ingestOne は1銘柄の日足を取得し、日次リターンを計算してから一括で
// 挿入（または更新）します。書き込み後は銘柄のキャッシュを無効化します。
func (iu *IngestUsecase) ingestOne(ctx context.Context, symbol string, outputsize int) error {
	sessions, err := iu.market.GetDailySeries(ctx, symbol, outputsize)
	if err != nil {
		return err
	}

	// プロバイダは新しい順で返すため、リターン計算の前に日付昇順へ並べ替える
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})
	for i := range sessions {
		sessions[i].Symbol = symbol
		if i > 0 && sessions[i-1].Close != 0 {
			sessions[i].ReturnPercentage = (sessions[i].Close - sessions[i-1].Close) / sessions[i-1].Close * 100
		}
	}

	if err := iu.sessions.UpsertBatch(ctx, sessions); err != nil {
		return err
	}
	if iu.cache != nil {
		if err := iu.cache.Invalidate(ctx, symbol); err != nil {
			slog.Warn("failed to invalidate session cache", "symbol", symbol, "error", err)
		}
	}
	return nil
}

// IngestPrices は指定された全銘柄の日足を取得し、データベースに永続化します。
// APIのレートリミットを考慮して、リクエスト間に適切な待機時間を設けます。
func (iu *IngestUsecase) IngestPrices(ctx context.Context, symbols []string) error {
	for _, s := range symbols {
		iu.rateLimiter.WaitIfNeeded()
		if err := iu.ingestOne(ctx, s, ingestOutputSize); err != nil {
			// 1つの銘柄でエラーが発生しても処理を止めずにログに出力し、次の処理を続ける
			slog.Error("failed to ingest prices", "symbol", s, "error", err)
			continue
		}
	}
	return nil
}

// IngestEvents はイベントカタログの発生をデータベースに永続化します。
// Yearが未設定の場合はDateから補完します。
func (iu *IngestUsecase) IngestEvents(ctx context.Context, events []entity.EventOccurrence) error {
	for i := range events {
		if events[i].Year == 0 {
			events[i].Year = events[i].Date.Year()
		}
	}
	return iu.events.UpsertBatch(ctx, events)
}
