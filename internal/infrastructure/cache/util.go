package cache

import (
	"time"
)

// TimeUntilNextLoad は次の午後7時（インド時間）までの期間を返します。
// 日次の価格ロードはインド市場の引け後に走るため、それまでキャッシュを
// 保持できます。
func TimeUntilNextLoad() time.Duration {
	loc, _ := time.LoadLocation("Asia/Kolkata")
	now := time.Now().In(loc)

	// 次の午後7時を計算
	next := time.Date(now.Year(), now.Month(), now.Day(), 19, 0, 0, 0, loc)

	// 今日の午後7時が既に過ぎている場合は明日を使用
	if now.After(next) {
		next = next.Add(24 * time.Hour)
	}

	return next.Sub(now)
}
