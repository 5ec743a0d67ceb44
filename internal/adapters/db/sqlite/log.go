package sqlite

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
)

// LogRepository is append/search only: log rows are written by the logging
// transport and never updated or deleted here.
type LogRepository struct {
	db *gorm.DB
}

func NewLogRepository(db *gorm.DB) *LogRepository {
	return &LogRepository{db: db}
}

func (r *LogRepository) Append(ctx context.Context, entry domain.LogEntry) error {
	m := LogModel{
		Timestamp: entry.Timestamp,
		Level:     entry.Level,
		Scope:     entry.Scope,
		Message:   entry.Message,
	}
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *LogRepository) Search(ctx context.Context, params domain.LogSearchParams) (domain.Page[domain.LogEntry], error) {
	q := r.db.WithContext(ctx).Model(&LogModel{})
	if params.Start != "" {
		q = q.Where("timestamp >= ?", params.Start)
	}
	if params.End != "" {
		q = q.Where("timestamp <= ?", params.End)
	}
	if len(params.Levels) > 0 {
		q = q.Where("level IN ?", params.Levels)
	}
	if strings.TrimSpace(params.Scope) != "" {
		q = q.Where("scope = ?", strings.TrimSpace(params.Scope))
	}
	if strings.TrimSpace(params.MessageContent) != "" {
		q = q.Where("message LIKE ?", "%"+strings.TrimSpace(params.MessageContent)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[domain.LogEntry]{}, err
	}

	rows := make([]LogModel, 0)
	if err := q.Order("timestamp DESC").Limit(domain.PageSize).Offset(params.Page * domain.PageSize).Find(&rows).Error; err != nil {
		return domain.Page[domain.LogEntry]{}, err
	}

	content := make([]domain.LogEntry, 0, len(rows))
	for _, m := range rows {
		content = append(content, domain.LogEntry{
			ID:        m.ID,
			Timestamp: m.Timestamp,
			Level:     m.Level,
			Scope:     m.Scope,
			Message:   m.Message,
		})
	}
	return pageOf(content, params.Page, total), nil
}
