package sqlite

import (
	"context"

	"gorm.io/gorm"

	"github.com/databridge-io/databridge/internal/domain"
	"github.com/databridge-io/databridge/internal/idgen"
)

type ScanModeRepository struct {
	db *gorm.DB
}

func NewScanModeRepository(db *gorm.DB) *ScanModeRepository {
	return &ScanModeRepository{db: db}
}

func (r *ScanModeRepository) GetAll(ctx context.Context) ([]domain.ScanMode, error) {
	rows := make([]ScanModeModel, 0)
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	result := make([]domain.ScanMode, 0, len(rows))
	for _, m := range rows {
		result = append(result, toScanMode(m))
	}
	return result, nil
}

func (r *ScanModeRepository) GetByID(ctx context.Context, id string) (domain.ScanMode, error) {
	var m ScanModeModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return domain.ScanMode{}, translateErr(err)
	}
	return toScanMode(m), nil
}

func (r *ScanModeRepository) Create(ctx context.Context, command domain.ScanModeCommand) (domain.ScanMode, error) {
	m := ScanModeModel{
		ID:          idgen.NewID(),
		Name:        command.Name,
		Description: command.Description,
		Cron:        command.Cron,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return domain.ScanMode{}, err
	}
	return r.GetByID(ctx, m.ID)
}

func (r *ScanModeRepository) Update(ctx context.Context, id string, command domain.ScanModeCommand) error {
	return r.db.WithContext(ctx).Model(&ScanModeModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":        command.Name,
		"description": command.Description,
		"cron":        command.Cron,
	}).Error
}

func (r *ScanModeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&ScanModeModel{}, "id = ?", id).Error
}

func toScanMode(m ScanModeModel) domain.ScanMode {
	return domain.ScanMode{ID: m.ID, Name: m.Name, Description: m.Description, Cron: m.Cron}
}
