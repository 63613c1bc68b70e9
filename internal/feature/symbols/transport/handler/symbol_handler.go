package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"seasonality_backend/internal/feature/symbols/domain/entity"
	"seasonality_backend/internal/feature/symbols/transport/http/dto"
)

// SymbolUsecase は銘柄ディレクトリのユースケースインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context, country string) ([]entity.Symbol, error)
}

// SymbolHandler は銘柄ディレクトリのHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄の一覧を取得するAPIです。
//
// エンドポイント例:
// GET /symbols?country=IN
func (h *SymbolHandler) List(c *gin.Context) {
	country := c.Query("country")
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context(), country)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, dto.SymbolItem{Code: s.Code, Name: s.Name, Exchange: s.Exchange, Country: s.Country})
	}
	c.JSON(http.StatusOK, out)
}
