package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seasonality_backend/internal/feature/eventstudy/domain/entity"
	"seasonality_backend/internal/feature/eventstudy/usecase"
)

type eventMySQL struct {
	db *gorm.DB
}

var _ usecase.EventRepository = (*eventMySQL)(nil)

func NewEventRepository(db *gorm.DB) *eventMySQL {
	return &eventMySQL{db: db}
}

type EventOccurrenceModel struct {
	ID       uint      `gorm:"primaryKey"`
	Name     string    `gorm:"size:128;not null;uniqueIndex:event_name_date,priority:1;index"`
	Date     time.Time `gorm:"not null;uniqueIndex:event_name_date,priority:2"`
	Year     int       `gorm:"not null;index"`
	Category string    `gorm:"size:64;not null;index"`
	Country  string    `gorm:"size:8;not null;default:''"`
}

func (EventOccurrenceModel) TableName() string {
	return "event_occurrences"
}

func toEventEntity(m EventOccurrenceModel) entity.EventOccurrence {
	return entity.EventOccurrence{
		Name:     m.Name,
		Date:     m.Date,
		Year:     m.Year,
		Category: m.Category,
		Country:  m.Country,
	}
}

// UpsertBatch は (name, date) をユニークキーとしてイベント発生をUpsertします。
func (r *eventMySQL) UpsertBatch(ctx context.Context, events []entity.EventOccurrence) error {
	if len(events) == 0 {
		return nil
	}
	ms := make([]EventOccurrenceModel, 0, len(events))
	for _, e := range events {
		ms = append(ms, EventOccurrenceModel{
			Name:     e.Name,
			Date:     e.Date,
			Year:     e.Year,
			Category: e.Category,
			Country:  e.Country,
		})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"year", "category", "country"}),
	}).Create(&ms).Error
}

// FindOccurrences はフィルタに合致するイベント発生を日付昇順で返します。
// Names と Categories の両方が指定された場合は Names が優先されます。
func (r *eventMySQL) FindOccurrences(ctx context.Context, filter entity.EventFilter) ([]entity.EventOccurrence, error) {
	q := r.db.WithContext(ctx).Model(&EventOccurrenceModel{}).
		Where("`date` >= ? AND `date` <= ?", filter.From, filter.To)

	switch {
	case len(filter.Names) > 0:
		q = q.Where("name IN ?", filter.Names)
	case len(filter.Categories) > 0:
		q = q.Where("category IN ?", filter.Categories)
	}
	if filter.Country != "" {
		q = q.Where("country = ?", filter.Country)
	}
	if len(filter.ExcludeYears) > 0 {
		q = q.Where("`year` NOT IN ?", filter.ExcludeYears)
	}

	var rows []EventOccurrenceModel
	if err := q.Order("`date` ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.EventOccurrence, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEventEntity(m))
	}
	return out, nil
}

// ListDefinitions は登録済みイベントの定義（名前・カテゴリ・国の組）を
// 重複なしで返します。
func (r *eventMySQL) ListDefinitions(ctx context.Context) ([]entity.EventDefinition, error) {
	var rows []EventOccurrenceModel
	err := r.db.WithContext(ctx).Model(&EventOccurrenceModel{}).
		Distinct("name", "category", "country").
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.EventDefinition, 0, len(rows))
	for _, m := range rows {
		out = append(out, entity.EventDefinition{
			Name:     m.Name,
			Category: m.Category,
			Country:  m.Country,
		})
	}
	return out, nil
}
