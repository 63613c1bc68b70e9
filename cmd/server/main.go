package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"seasonality_backend/internal/app/router"
	eventstudyadapters "seasonality_backend/internal/feature/eventstudy/adapters"
	eventstudyhandler "seasonality_backend/internal/feature/eventstudy/transport/handler"
	eventstudyusecase "seasonality_backend/internal/feature/eventstudy/usecase"
	symbolsadapters "seasonality_backend/internal/feature/symbols/adapters"
	symbolshandler "seasonality_backend/internal/feature/symbols/transport/handler"
	symbolsusecase "seasonality_backend/internal/feature/symbols/usecase"
	"seasonality_backend/internal/infrastructure/cache"
	infradb "seasonality_backend/internal/infrastructure/db"
	infraredis "seasonality_backend/internal/infrastructure/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	sessionRepo := eventstudyadapters.NewSessionRepository(db)
	eventRepo := eventstudyadapters.NewEventRepository(db)
	symbolRepo := symbolsadapters.NewSymbolRepository(db)

	// Redisキャッシュでラップ（価格履歴は日次ロードまで不変）
	ttl := cache.TimeUntilNextLoad()
	cachedSessionRepo := cache.NewCachingSessionRepository(rdb, ttl, sessionRepo, "sessions")

	// Usecase
	analysisUC := eventstudyusecase.NewEventAnalysisUsecase(cachedSessionRepo, eventRepo)
	symbolUC := symbolsusecase.NewSymbolUsecase(symbolRepo)

	// Handler
	analysisH := eventstudyhandler.NewEventAnalysisHandler(analysisUC)
	symbolH := symbolshandler.NewSymbolHandler(symbolUC)

	// ルータ生成
	router := router.NewRouter(analysisH, symbolH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}
