package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

// History query ids are short: they end up in cache folder names on disk.
const historyQueryIDLength = 6

type HistoryQueryRepository struct {
	db *gorm.DB
}

func NewHistoryQueryRepository(db *gorm.DB) *HistoryQueryRepository {
	return &HistoryQueryRepository{db: db}
}

func (r *HistoryQueryRepository) GetAll(ctx context.Context) ([]domain.HistoryQuery, error) {
	rows := make([]HistoryQueryModel, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.HistoryQuery, 0, len(rows))
	for _, m := range rows {
		result = append(result, toHistoryQuery(m))
	}
	return result, nil
}

func (r *HistoryQueryRepository) Search(ctx context.Context, name string, page int) (domain.Page[domain.HistoryQuery], error) {
	q := r.db.WithContext(ctx).Model(&HistoryQueryModel{})
	if strings.TrimSpace(name) != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(name)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[domain.HistoryQuery]{}, err
	}

	rows := make([]HistoryQueryModel, 0)
	if err := q.Order("name ASC").Limit(domain.PageSize).Offset(page * domain.PageSize).Find(&rows).Error; err != nil {
		return domain.Page[domain.HistoryQuery]{}, err
	}

	content := make([]domain.HistoryQuery, 0, len(rows))
	for _, m := range rows {
		content = append(content, toHistoryQuery(m))
	}
	return pageOf(content, page, total), nil
}

func (r *HistoryQueryRepository) GetByID(ctx context.Context, id string) (domain.HistoryQuery, error) {
	var m HistoryQueryModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.HistoryQuery{}, translateErr(err)
	}
	return toHistoryQuery(m), nil
}

func (r *HistoryQueryRepository) Create(ctx context.Context, command domain.HistoryQueryCommand) (domain.HistoryQuery, error) {
	m := fromHistoryQueryCommand(command)
	m.ID = idgen.NewIDN(historyQueryIDLength)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.HistoryQuery{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *HistoryQueryRepository) Update(ctx context.Context, id string, command domain.HistoryQueryCommand) error {
	m := fromHistoryQueryCommand(command)
	return r.db.WithContext(ctx).Model(&HistoryQueryModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":                       m.Name,
		"description":                m.Description,
		"enabled":                    m.Enabled,
		"start_time":                 m.StartTime,
		"end_time":                   m.EndTime,
		"south_type":                 m.SouthType,
		"north_type":                 m.NorthType,
		"south_settings":             m.SouthSettings,
		"north_settings":             m.NorthSettings,
		"caching_scan_mode_id":       m.CachingScanModeID,
		"caching_group_count":        m.CachingGroupCount,
		"caching_retry_interval":     m.CachingRetryInterval,
		"caching_retry_count":        m.CachingRetryCount,
		"caching_max_send_count":     m.CachingMaxSendCount,
		"caching_timeout":            m.CachingTimeout,
		"archive_enabled":            m.ArchiveEnabled,
		"archive_retention_duration": m.ArchiveRetentionDuration,
	}).Error
}

func (r *HistoryQueryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&HistoryQueryModel{}, "id = ?", id).Error
}

func fromHistoryQueryCommand(command domain.HistoryQueryCommand) HistoryQueryModel {
	return HistoryQueryModel{
		Name:                     command.Name,
		Description:              command.Description,
		Enabled:                  command.Enabled,
		StartTime:                command.StartTime,
		EndTime:                  command.EndTime,
		SouthType:                command.SouthType,
		NorthType:                command.NorthType,
		SouthSettings:            encodeSettings(command.SouthSettings),
		NorthSettings:            encodeSettings(command.NorthSettings),
		CachingScanModeID:        command.Caching.ScanModeID,
		CachingGroupCount:        command.Caching.GroupCount,
		CachingRetryInterval:     command.Caching.RetryInterval,
		CachingRetryCount:        command.Caching.RetryCount,
		CachingMaxSendCount:      command.Caching.MaxSendCount,
		CachingTimeout:           command.Caching.Timeout,
		ArchiveEnabled:           command.Archive.Enabled,
		ArchiveRetentionDuration: command.Archive.RetentionDuration,
	}
}

func toHistoryQuery(m HistoryQueryModel) domain.HistoryQuery {
	return domain.HistoryQuery{
		ID:            m.ID,
		Name:          m.Name,
		Description:   m.Description,
		Enabled:       m.Enabled,
		StartTime:     m.StartTime,
		EndTime:       m.EndTime,
		SouthType:     m.SouthType,
		NorthType:     m.NorthType,
		SouthSettings: json.RawMessage(m.SouthSettings),
		NorthSettings: json.RawMessage(m.NorthSettings),
		Caching: domain.HistoryCaching{
			ScanModeID:    m.CachingScanModeID,
			GroupCount:    m.CachingGroupCount,
			RetryInterval: m.CachingRetryInterval,
			RetryCount:    m.CachingRetryCount,
			MaxSendCount:  m.CachingMaxSendCount,
			Timeout:       m.CachingTimeout,
		},
		Archive: domain.HistoryArchive{
			Enabled:           m.ArchiveEnabled,
			RetentionDuration: m.ArchiveRetentionDuration,
		},
	}
}
