package router

import (
	"github.com/gin-gonic/gin"

	eventstudyhandler "seasonality_backend/internal/feature/eventstudy/transport/handler"
	symbolshandler "seasonality_backend/internal/feature/symbols/transport/handler"
	healthhandler "seasonality_backend/internal/infrastructure/http/handler"
	jwtmw "seasonality_backend/internal/infrastructure/jwt"
)

func NewRouter(analysis *eventstudyhandler.EventAnalysisHandler, symbols *symbolshandler.SymbolHandler) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", healthhandler.Health)

	// 認証必須のルート
	// トークン発行は別サービス。ここでは検証のみを行う
	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired())
	{
		auth.POST("/analysis/events", analysis.Analyze)
		auth.POST("/analysis/events/legacy", analysis.AnalyzeLegacy)
		auth.GET("/events", analysis.ListEvents)
		auth.GET("/symbols", symbols.List)
	}

	return r
}
