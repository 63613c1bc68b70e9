package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	"seasonality_backend/internal/feature/eventstudy/usecase"
)

type sessionMySQL struct {
	db *gorm.DB
}

var _ usecase.SessionRepository = (*sessionMySQL)(nil)

func NewSessionRepository(db *gorm.DB) *sessionMySQL {
	return &sessionMySQL{db: db}
}

type TradingSessionModel struct {
	ID     uint      `gorm:"primaryKey"`
	Symbol string    `gorm:"size:32;not null;uniqueIndex:session_sym_date,priority:1"`
	Date   time.Time `gorm:"not null;uniqueIndex:session_sym_date,priority:2"`

	Open             float64 `gorm:"not null"`
	High             float64 `gorm:"not null"`
	Low              float64 `gorm:"not null"`
	Close            float64 `gorm:"not null"`
	Volume           int64   `gorm:"not null;default:0"`
	ReturnPercentage float64 `gorm:"not null;default:0"`
}

func (TradingSessionModel) TableName() string {
	return "trading_sessions"
}

func toSessionModel(e entity.TradingSession) TradingSessionModel {
	return TradingSessionModel{
		Symbol:           e.Symbol,
		Date:             e.Date,
		Open:             e.Open,
		High:             e.High,
		Low:              e.Low,
		Close:            e.Close,
		Volume:           e.Volume,
		ReturnPercentage: e.ReturnPercentage,
	}
}

func toSessionEntity(m TradingSessionModel) entity.TradingSession {
	return entity.TradingSession{
		Symbol:           m.Symbol,
		Date:             m.Date,
		Open:             m.Open,
		High:             m.High,
		Low:              m.Low,
		Close:            m.Close,
		Volume:           m.Volume,
		ReturnPercentage: m.ReturnPercentage,
	}
}

// UpsertBatch は (symbol, date) をユニークキーとしてセッションをUpsertします。
func (r *sessionMySQL) UpsertBatch(ctx context.Context, sessions []entity.TradingSession) error {
	if len(sessions) == 0 {
		return nil
	}
	ms := make([]TradingSessionModel, 0, len(sessions))
	for _, e := range sessions {
		ms = append(ms, toSessionModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume", "return_percentage"}),
	}).Create(&ms).Error
}

// FindRange は銘柄の取引セッションを日付レンジで検索し、日付昇順で返します。
func (r *sessionMySQL) FindRange(ctx context.Context, symbol string, from, to time.Time) ([]entity.TradingSession, error) {
	var rows []TradingSessionModel
	err := r.db.WithContext(ctx).
		Where("symbol = ? AND `date` >= ? AND `date` <= ?", symbol, from, to).
		Order("`date` ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.TradingSession, 0, len(rows))
	for _, m := range rows {
		out = append(out, toSessionEntity(m))
	}
	return out, nil
}
