package settingsrepo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/pgerrors"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Upsert inserts the setting or overwrites the row with the same key.
func (r *GormSettingsRepository) Upsert(ctx context.Context, setting ports.Setting) error {
	if strings.TrimSpace(setting.Key) == "" {
		return errs.NewValueIsRequiredError("key")
	}

	dto := fromPort(setting)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "type", "description", "category", "display_order", "is_active", "updated_at"}),
		}).
		Create(&dto).Error
	if err != nil {
		return pgerrors.Classify("setting upsert", err)
	}

	return nil
}

// Get retrieves a setting by key, active or not.
func (r *GormSettingsRepository) Get(ctx context.Context, key string) (*ports.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errs.NewValueIsRequiredError("key")
	}

	var dto SettingDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("setting", key)
		}
		return nil, pgerrors.Classify("setting select", err)
	}

	setting := toPort(dto)
	return &setting, nil
}

// GetAll retrieves every setting ordered by category, then display order.
func (r *GormSettingsRepository) GetAll(ctx context.Context) ([]ports.Setting, error) {
	var dtos []SettingDTO
	err := r.db.WithContext(ctx).Order("category, display_order, key").Find(&dtos).Error
	if err != nil {
		return nil, pgerrors.Classify("setting list", err)
	}

	settings := make([]ports.Setting, 0, len(dtos))
	for _, dto := range dtos {
		settings = append(settings, toPort(dto))
	}

	return settings, nil
}
