// Package usecase implements the business logic for symbol directory operations.
package usecase

import (
	"context"

	"seasonality_backend/internal/feature/symbols/domain/entity"
)

// SymbolRepository abstracts the persistence layer for the symbol directory.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context, country string) ([]entity.Symbol, error)
}

// SymbolUsecase provides business logic for symbol directory operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns active symbols, optionally restricted to one country.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context, country string) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx, country)
}
