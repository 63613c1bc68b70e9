package entity

import "time"

// EventOccurrence は名前付きイベント（例: Union Budget Day）の1回の発生です。
// 外部プロバイダから供給され、不変の入力として扱います。
type EventOccurrence struct {
	Name     string
	Date     time.Time
	Year     int
	Category string
	Country  string
}

// EventDefinition はダッシュボードのフィルタ用に公開するイベントの定義情報です。
type EventDefinition struct {
	Name     string
	Category string
	Country  string
}

// EventFilter はイベント発生の検索条件です。
// Names と Categories の両方が指定された場合は Names が優先されます。
type EventFilter struct {
	Names        []string
	Categories   []string
	Country      string
	From         time.Time
	To           time.Time
	ExcludeYears []int
}
