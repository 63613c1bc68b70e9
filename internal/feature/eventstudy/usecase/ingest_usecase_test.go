package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

var (
	errMarketAPI = errors.New("market API error")
	errStore     = errors.New("database error")
)

// mockMarketRepository is a mock implementation of the MarketRepository interface.
type mockMarketRepository struct {
	GetDailySeriesFunc  func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error)
	GetDailySeriesCalls int
}

func (m *mockMarketRepository) GetDailySeries(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
	m.GetDailySeriesCalls++
	if m.GetDailySeriesFunc != nil {
		return m.GetDailySeriesFunc(ctx, symbol, outputsize)
	}
	return nil, errors.New("GetDailySeriesFunc is not implemented")
}

// mockSessionWriter is a mock implementation of the SessionWriter interface.
type mockSessionWriter struct {
	UpsertBatchFunc func(ctx context.Context, sessions []entity.TradingSession) error
}

func (m *mockSessionWriter) UpsertBatch(ctx context.Context, sessions []entity.TradingSession) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, sessions)
	}
	return nil
}

// mockEventWriter is a mock implementation of the EventWriter interface.
type mockEventWriter struct {
	UpsertBatchFunc func(ctx context.Context, events []entity.EventOccurrence) error
}

func (m *mockEventWriter) UpsertBatch(ctx context.Context, events []entity.EventOccurrence) error {
	if m.UpsertBatchFunc != nil {
		return m.UpsertBatchFunc(ctx, events)
	}
	return nil
}

// mockInvalidator is a mock implementation of the SessionCacheInvalidator interface.
type mockInvalidator struct {
	InvalidatedSymbols []string
}

func (m *mockInvalidator) Invalidate(ctx context.Context, symbol string) error {
	m.InvalidatedSymbols = append(m.InvalidatedSymbols, symbol)
	return nil
}

// mockRateLimiter is a mock implementation of the RateLimiterInterface.
type mockRateLimiter struct {
	WaitIfNeededCalls int
}

func (m *mockRateLimiter) WaitIfNeeded() {
	m.WaitIfNeededCalls++
}

func TestIngestUsecase_ingestOne(t *testing.T) {
	ctx := context.Background()
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// プロバイダと同じく新しい順で返す
	providerSessions := []entity.TradingSession{
		{Date: baseDate.AddDate(0, 0, 2), Open: 104, High: 112, Low: 100, Close: 110, Volume: 1200},
		{Date: baseDate.AddDate(0, 0, 1), Open: 101, High: 106, Low: 99, Close: 104, Volume: 1100},
		{Date: baseDate, Open: 100, High: 103, Low: 98, Close: 100, Volume: 1000},
	}

	t.Run("success: sorts ascending and computes daily returns", func(t *testing.T) {
		var captured []entity.TradingSession
		market := &mockMarketRepository{
			GetDailySeriesFunc: func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
				if symbol != "NIFTY50" {
					t.Errorf("GetDailySeries called with unexpected symbol %q", symbol)
				}
				return providerSessions, nil
			},
		}
		sessions := &mockSessionWriter{
			UpsertBatchFunc: func(ctx context.Context, ss []entity.TradingSession) error {
				captured = ss
				return nil
			},
		}
		invalidator := &mockInvalidator{}

		uc := NewIngestUsecase(market, sessions, &mockEventWriter{}, invalidator, &mockRateLimiter{})
		if err := uc.ingestOne(ctx, "NIFTY50", 100); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(captured) != 3 {
			t.Fatalf("got %d sessions, want 3", len(captured))
		}
		for i := 1; i < len(captured); i++ {
			if !captured[i-1].Date.Before(captured[i].Date) {
				t.Error("sessions should be sorted ascending before persisting")
			}
		}
		for _, s := range captured {
			if s.Symbol != "NIFTY50" {
				t.Errorf("session Symbol not set: got %q", s.Symbol)
			}
		}
		// 100 -> 104 は +4%、104 -> 110 は +5.769...%
		if captured[0].ReturnPercentage != 0 {
			t.Errorf("first session return = %v, want 0", captured[0].ReturnPercentage)
		}
		if captured[1].ReturnPercentage != 4.0 {
			t.Errorf("second session return = %v, want 4.0", captured[1].ReturnPercentage)
		}
		want := (110.0 - 104.0) / 104.0 * 100
		if captured[2].ReturnPercentage != want {
			t.Errorf("third session return = %v, want %v", captured[2].ReturnPercentage, want)
		}

		if len(invalidator.InvalidatedSymbols) != 1 || invalidator.InvalidatedSymbols[0] != "NIFTY50" {
			t.Errorf("cache invalidation = %v, want [NIFTY50]", invalidator.InvalidatedSymbols)
		}
	})

	t.Run("error: market repository error is returned", func(t *testing.T) {
		market := &mockMarketRepository{
			GetDailySeriesFunc: func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
				return nil, errMarketAPI
			},
		}
		sessions := &mockSessionWriter{
			UpsertBatchFunc: func(ctx context.Context, ss []entity.TradingSession) error {
				t.Error("UpsertBatch should not be called")
				return nil
			},
		}

		uc := NewIngestUsecase(market, sessions, &mockEventWriter{}, nil, &mockRateLimiter{})
		if err := uc.ingestOne(ctx, "NIFTY50", 100); !errors.Is(err, errMarketAPI) {
			t.Fatalf("expected %v, got %v", errMarketAPI, err)
		}
	})

	t.Run("error: writer error is returned and cache stays untouched", func(t *testing.T) {
		market := &mockMarketRepository{
			GetDailySeriesFunc: func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
				return providerSessions, nil
			},
		}
		sessions := &mockSessionWriter{
			UpsertBatchFunc: func(ctx context.Context, ss []entity.TradingSession) error {
				return errStore
			},
		}
		invalidator := &mockInvalidator{}

		uc := NewIngestUsecase(market, sessions, &mockEventWriter{}, invalidator, &mockRateLimiter{})
		if err := uc.ingestOne(ctx, "NIFTY50", 100); !errors.Is(err, errStore) {
			t.Fatalf("expected %v, got %v", errStore, err)
		}
		if len(invalidator.InvalidatedSymbols) != 0 {
			t.Error("cache should not be invalidated when the write fails")
		}
	})
}

func TestIngestUsecase_IngestPrices(t *testing.T) {
	ctx := context.Background()
	baseDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mockSessions := []entity.TradingSession{
		{Date: baseDate, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1000},
	}

	testCases := []struct {
		name          string
		symbols       []string
		mockFetchFunc func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error)
		expectedCalls int
	}{
		{
			name:    "success: fetch all symbols",
			symbols: []string{"NIFTY50", "BANKNIFTY"},
			mockFetchFunc: func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
				return mockSessions, nil
			},
			expectedCalls: 2,
		},
		{
			name:    "success: empty symbol list",
			symbols: []string{},
			mockFetchFunc: func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
				t.Error("GetDailySeries should not be called")
				return nil, errors.New("should not be called")
			},
			expectedCalls: 0,
		},
		{
			name:    "success: continues processing even when some symbols fail",
			symbols: []string{"NIFTY50", "INVALID", "BANKNIFTY"},
			mockFetchFunc: func(ctx context.Context, symbol string, outputsize int) ([]entity.TradingSession, error) {
				if symbol == "INVALID" {
					return nil, errMarketAPI
				}
				return mockSessions, nil
			},
			expectedCalls: 3,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			market := &mockMarketRepository{GetDailySeriesFunc: tc.mockFetchFunc}
			rl := &mockRateLimiter{}

			uc := NewIngestUsecase(market, &mockSessionWriter{}, &mockEventWriter{}, nil, rl)
			if err := uc.IngestPrices(ctx, tc.symbols); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if market.GetDailySeriesCalls != tc.expectedCalls {
				t.Errorf("GetDailySeries was called %d times, expected %d", market.GetDailySeriesCalls, tc.expectedCalls)
			}
			if rl.WaitIfNeededCalls != len(tc.symbols) {
				t.Errorf("WaitIfNeeded was called %d times, expected %d", rl.WaitIfNeededCalls, len(tc.symbols))
			}
		})
	}
}

func TestIngestUsecase_IngestEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("success: fills year from date when unset", func(t *testing.T) {
		var captured []entity.EventOccurrence
		events := &mockEventWriter{
			UpsertBatchFunc: func(ctx context.Context, es []entity.EventOccurrence) error {
				captured = es
				return nil
			},
		}

		uc := NewIngestUsecase(&mockMarketRepository{}, &mockSessionWriter{}, events, nil, &mockRateLimiter{})
		err := uc.IngestEvents(ctx, []entity.EventOccurrence{
			{Name: "Union Budget Day", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Category: "economic"},
			{Name: "Diwali", Date: time.Date(2023, 11, 12, 0, 0, 0, 0, time.UTC), Year: 2023, Category: "festival"},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if captured[0].Year != 2024 {
			t.Errorf("year not filled from date: got %d, want 2024", captured[0].Year)
		}
		if captured[1].Year != 2023 {
			t.Errorf("preset year should be kept: got %d", captured[1].Year)
		}
	})

	t.Run("error: writer error is returned", func(t *testing.T) {
		events := &mockEventWriter{
			UpsertBatchFunc: func(ctx context.Context, es []entity.EventOccurrence) error {
				return errStore
			},
		}

		uc := NewIngestUsecase(&mockMarketRepository{}, &mockSessionWriter{}, events, nil, &mockRateLimiter{})
		err := uc.IngestEvents(ctx, []entity.EventOccurrence{{Name: "Diwali"}})
		if !errors.Is(err, errStore) {
			t.Fatalf("expected %v, got %v", errStore, err)
		}
	})
}
