package sqlite

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

type SouthConnectorRepository struct {
	db *gorm.DB
}

func NewSouthConnectorRepository(db *gorm.DB) *SouthConnectorRepository {
	return &SouthConnectorRepository{db: db}
}

func (r *SouthConnectorRepository) GetAll(ctx context.Context) ([]domain.SouthConnector, error) {
	rows := make([]SouthConnectorModel, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.SouthConnector, 0, len(rows))
	for _, m := range rows {
		result = append(result, toSouthConnector(m))
	}
	return result, nil
}

func (r *SouthConnectorRepository) GetByID(ctx context.Context, id string) (domain.SouthConnector, error) {
	var m SouthConnectorModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.SouthConnector{}, translateErr(err)
	}
	return toSouthConnector(m), nil
}

func (r *SouthConnectorRepository) Create(ctx context.Context, command domain.SouthConnectorCommand) (domain.SouthConnector, error) {
	m := SouthConnectorModel{
		ID:          idgen.NewID(),
		Name:        command.Name,
		Type:        command.Type,
		Description: command.Description,
		Enabled:     command.Enabled,
		Settings:    encodeSettings(command.Settings),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.SouthConnector{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *SouthConnectorRepository) Update(ctx context.Context, id string, command domain.SouthConnectorCommand) error {
	return r.db.WithContext(ctx).Model(&SouthConnectorModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":        command.Name,
		"type":        command.Type,
		"description": command.Description,
		"enabled":     command.Enabled,
		"settings":    encodeSettings(command.Settings),
	}).Error
}

// Delete removes the connector, its items, and any interval cursor whose
// scan mode is no longer referenced by a remaining item, all in one
// transaction so a crash cannot leave orphans behind.
func (r *SouthConnectorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
DELETE FROM cache_history
WHERE scan_mode_id IN (SELECT scan_mode_id FROM south_item WHERE south_id = ?)
  AND scan_mode_id NOT IN (SELECT scan_mode_id FROM south_item WHERE south_id != ?)
`, id, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&SouthItemModel{}, "south_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&SouthConnectorModel{}, "id = ?", id).Error
	})
}

func toSouthConnector(m SouthConnectorModel) domain.SouthConnector {
	return domain.SouthConnector{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Description: m.Description,
		Enabled:     m.Enabled,
		Settings:    json.RawMessage(m.Settings),
	}
}

type NorthConnectorRepository struct {
	db *gorm.DB
}

func NewNorthConnectorRepository(db *gorm.DB) *NorthConnectorRepository {
	return &NorthConnectorRepository{db: db}
}

func (r *NorthConnectorRepository) GetAll(ctx context.Context) ([]domain.NorthConnector, error) {
	rows := make([]NorthConnectorModel, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.NorthConnector, 0, len(rows))
	for _, m := range rows {
		result = append(result, toNorthConnector(m))
	}
	return result, nil
}

func (r *NorthConnectorRepository) GetByID(ctx context.Context, id string) (domain.NorthConnector, error) {
	var m NorthConnectorModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.NorthConnector{}, translateErr(err)
	}
	return toNorthConnector(m), nil
}

func (r *NorthConnectorRepository) Create(ctx context.Context, command domain.NorthConnectorCommand) (domain.NorthConnector, error) {
	m := NorthConnectorModel{
		ID:          idgen.NewID(),
		Name:        command.Name,
		Type:        command.Type,
		Description: command.Description,
		Enabled:     command.Enabled,
		Settings:    encodeSettings(command.Settings),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.NorthConnector{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *NorthConnectorRepository) Update(ctx context.Context, id string, command domain.NorthConnectorCommand) error {
	return r.db.WithContext(ctx).Model(&NorthConnectorModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":        command.Name,
		"type":        command.Type,
		"description": command.Description,
		"enabled":     command.Enabled,
		"settings":    encodeSettings(command.Settings),
	}).Error
}

func (r *NorthConnectorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&NorthConnectorModel{}, "id = ?", id).Error
}

func toNorthConnector(m NorthConnectorModel) domain.NorthConnector {
	return domain.NorthConnector{
		ID:          m.ID,
		Name:        m.Name,
		Type:        m.Type,
		Description: m.Description,
		Enabled:     m.Enabled,
		Settings:    json.RawMessage(m.Settings),
	}
}

// encodeSettings stores opaque configuration exactly as given; a nil blob
// becomes the empty object so the column stays NOT NULL.
func encodeSettings(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}
