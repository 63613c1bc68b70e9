// Package engine はイベントスタディ分析の純粋計算コアです。
// すべての関数はメモリ上のデータに対する純粋な変換で、I/Oを行いません。
package engine

import (
	"fmt"
	"time"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
)

// DateKey はカレンダー索引のキー形式です。タイムゾーンのずれを避けるため、
// タイムスタンプではなく暦日文字列をキーにします。
const DateKey = "2006-01-02"

// Calendar は日付昇順の取引セッション列と日付→位置の索引です。
// 構築後は読み取り専用です。
type Calendar struct {
	sessions []entity.TradingSession
	byDate   map[string]int
}

// NewCalendar はセッション列からカレンダー索引を構築します。
// 日付は厳密に昇順・重複なしでなければなりません。
func NewCalendar(sessions []entity.TradingSession) (*Calendar, error) {
	byDate := make(map[string]int, len(sessions))
	for i, s := range sessions {
		key := s.Date.UTC().Format(DateKey)
		if _, ok := byDate[key]; ok {
			return nil, fmt.Errorf("duplicate trading session for %s", key)
		}
		if i > 0 && !sessions[i-1].Date.Before(s.Date) {
			return nil, fmt.Errorf("trading sessions out of order at %s", key)
		}
		byDate[key] = i
	}
	return &Calendar{sessions: sessions, byDate: byDate}, nil
}

// Len はセッション数を返します。
func (c *Calendar) Len() int {
	return len(c.sessions)
}

// At は位置 i のセッションを返します。
func (c *Calendar) At(i int) entity.TradingSession {
	return c.sessions[i]
}

// IndexOf は日付に対応するカレンダー位置を返します。
// その暦日にセッションが存在しない場合は ok=false です。
func (c *Calendar) IndexOf(date time.Time) (int, bool) {
	i, ok := c.byDate[date.UTC().Format(DateKey)]
	return i, ok
}
