package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"seasonality_backend/internal/feature/eventstudy/adapters"
	"seasonality_backend/internal/feature/eventstudy/adapters/twelvedata"
	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	eventstudyusecase "seasonality_backend/internal/feature/eventstudy/usecase"
	symbolsadapters "seasonality_backend/internal/feature/symbols/adapters"
	"seasonality_backend/internal/infrastructure/cache"
	infradb "seasonality_backend/internal/infrastructure/db"
	infrahttp "seasonality_backend/internal/infrastructure/http"
	infraredis "seasonality_backend/internal/infrastructure/redis"
	"seasonality_backend/internal/shared/ratelimiter"

	redisv9 "github.com/redis/go-redis/v9"
)

// catalogEntry はイベントカタログJSONの1行です。日付は "2006-01-02" 形式です。
type catalogEntry struct {
	Name     string `json:"name"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Country  string `json:"country"`
}

// loadEventCatalog はEVENT_CATALOG_PATHのJSONファイルからイベント発生を読み込みます。
func loadEventCatalog(path string) ([]entity.EventOccurrence, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rows []catalogEntry
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, err
	}
	out := make([]entity.EventOccurrence, 0, len(rows))
	for _, r := range rows {
		d, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.EventOccurrence{
			Name:     r.Name,
			Date:     d,
			Category: r.Category,
			Country:  r.Country,
		})
	}
	return out, nil
}

func main() {
	db := infradb.OpenDB()

	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Skipping cache invalidation.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	cfg := twelvedata.LoadConfig()
	marketRepo := twelvedata.NewTwelveDataMarket(cfg, infrahttp.NewHTTPClient(cfg.Timeout))
	sessionRepo := adapters.NewSessionRepository(db)
	eventRepo := adapters.NewEventRepository(db)
	symbolRepo := symbolsadapters.NewSymbolRepository(db)

	// ロード後の無効化用。Redisがnilならバイパスされる
	invalidator := cache.NewCachingSessionRepository(rdb, 0, sessionRepo, "sessions")

	rl := ratelimiter.NewRateLimiter(8, time.Minute)
	uc := eventstudyusecase.NewIngestUsecase(marketRepo, sessionRepo, eventRepo, invalidator, rl)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	symbols, err := symbolRepo.ListActive(ctx, "")
	if err != nil {
		log.Fatal("failed to load symbols:", err)
	}
	codes := make([]string, 0, len(symbols))
	for _, s := range symbols {
		codes = append(codes, s.Code)
	}

	if err := uc.IngestPrices(ctx, codes); err != nil {
		log.Fatal(err)
	}

	if path := os.Getenv("EVENT_CATALOG_PATH"); path != "" {
		events, err := loadEventCatalog(path)
		if err != nil {
			log.Fatal("failed to load event catalog:", err)
		}
		if err := uc.IngestEvents(ctx, events); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("ingest ok")
}
