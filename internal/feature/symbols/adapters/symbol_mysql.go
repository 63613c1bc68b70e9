// Package adapters はsymbolsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"

	"gorm.io/gorm"

	"seasonality_backend/internal/feature/symbols/domain/entity"
	"seasonality_backend/internal/feature/symbols/usecase"
)

// symbolMySQL はSymbolRepositoryインターフェースのMySQL実装です。
type symbolMySQL struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolMySQL)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolMySQLリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolMySQL {
	return &symbolMySQL{db: db}
}

// ListActive はsort_key順にアクティブな銘柄を返します。
// country が空でない場合はその国の銘柄に限定します。
func (r *symbolMySQL) ListActive(ctx context.Context, country string) ([]entity.Symbol, error) {
	q := r.db.WithContext(ctx).Where("is_active = ?", true)
	if country != "" {
		q = q.Where("country = ?", country)
	}
	var symbols []entity.Symbol
	if err := q.Order("sort_key ASC").Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
