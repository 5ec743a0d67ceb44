package sqlite

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/databridge-io/databridge/internal/domain"
)

// SouthCacheRepository persists the per-scan-mode resumption cursor used by
// interval-based historical reads.
type SouthCacheRepository struct {
	db *gorm.DB
}

func NewSouthCacheRepository(db *gorm.DB) *SouthCacheRepository {
	return &SouthCacheRepository{db: db}
}

func (r *SouthCacheRepository) GetByScanMode(ctx context.Context, scanModeID string) (domain.SouthCache, error) {
	var m SouthCacheModel
	if err := r.db.WithContext(ctx).First(&m, "scan_mode_id = ?", scanModeID).Error; err != nil {
		return domain.SouthCache{}, translateErr(err)
	}
	return domain.SouthCache{ScanModeID: m.ScanModeID, IntervalIndex: m.IntervalIndex, MaxInstant: m.MaxInstant}, nil
}

// Upsert writes the cursor with a single INSERT ... ON CONFLICT statement,
// so concurrent writers for the same scan mode cannot race a presence check
// into a duplicate row or a lost update.
func (r *SouthCacheRepository) Upsert(ctx context.Context, entry domain.SouthCache) error {
	m := SouthCacheModel{
		ScanModeID:    entry.ScanModeID,
		IntervalIndex: entry.IntervalIndex,
		MaxInstant:    entry.MaxInstant,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scan_mode_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"interval_index", "max_instant"}),
	}).Create(&m).Error
}

// Delete drops the cursor; the next read for that scan mode restarts from
// its configured start time.
func (r *SouthCacheRepository) Delete(ctx context.Context, scanModeID string) error {
	return r.db.WithContext(ctx).Delete(&SouthCacheModel{}, "scan_mode_id = ?", scanModeID).Error
}

// Reset clears every cursor.
func (r *SouthCacheRepository) Reset(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("DELETE FROM cache_history").Error
}
