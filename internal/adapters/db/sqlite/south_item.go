package sqlite

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

type SouthItemRepository struct {
	db *gorm.DB
}

func NewSouthItemRepository(db *gorm.DB) *SouthItemRepository {
	return &SouthItemRepository{db: db}
}

func (r *SouthItemRepository) GetByID(ctx context.Context, id string) (domain.SouthItem, error) {
	var m SouthItemModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.SouthItem{}, translateErr(err)
	}
	return toSouthItem(m), nil
}

func (r *SouthItemRepository) ListBySouth(ctx context.Context, southID string) ([]domain.SouthItem, error) {
	rows := make([]SouthItemModel, 0)
	if err := r.db.WithContext(ctx).Where("south_id = ?", southID).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.SouthItem, 0, len(rows))
	for _, m := range rows {
		result = append(result, toSouthItem(m))
	}
	return result, nil
}

func (r *SouthItemRepository) Search(ctx context.Context, southID, name string, page int) (domain.Page[domain.SouthItem], error) {
	q := r.db.WithContext(ctx).Model(&SouthItemModel{}).Where("south_id = ?", southID)
	if strings.TrimSpace(name) != "" {
		q = q.Where("name LIKE ?", "%"+strings.TrimSpace(name)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return domain.Page[domain.SouthItem]{}, err
	}

	rows := make([]SouthItemModel, 0)
	if err := q.Order("name ASC").Limit(domain.PageSize).Offset(page * domain.PageSize).Find(&rows).Error; err != nil {
		return domain.Page[domain.SouthItem]{}, err
	}

	content := make([]domain.SouthItem, 0, len(rows))
	for _, m := range rows {
		content = append(content, toSouthItem(m))
	}
	return pageOf(content, page, total), nil
}

func (r *SouthItemRepository) Create(ctx context.Context, southID string, command domain.SouthItemCommand) (domain.SouthItem, error) {
	m := SouthItemModel{
		ID:         idgen.NewID(),
		Name:       command.Name,
		SouthID:    southID,
		ScanModeID: command.ScanModeID,
		Settings:   encodeSettings(command.Settings),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.SouthItem{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *SouthItemRepository) Update(ctx context.Context, id string, command domain.SouthItemCommand) error {
	return r.db.WithContext(ctx).Model(&SouthItemModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":         command.Name,
		"scan_mode_id": command.ScanModeID,
		"settings":     encodeSettings(command.Settings),
	}).Error
}

func (r *SouthItemRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&SouthItemModel{}, "id = ?", id).Error
}

func (r *SouthItemRepository) DeleteAllBySouth(ctx context.Context, southID string) error {
	return r.db.WithContext(ctx).Delete(&SouthItemModel{}, "south_id = ?", southID).Error
}

func toSouthItem(m SouthItemModel) domain.SouthItem {
	return domain.SouthItem{
		ID:         m.ID,
		Name:       m.Name,
		SouthID:    m.SouthID,
		ScanModeID: m.ScanModeID,
		Settings:   json.RawMessage(m.Settings),
	}
}
