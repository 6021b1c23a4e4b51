// Package settingsrepo persists the runtime settings rows that tune business
// behavior without a redeploy: discount percentages, shipping thresholds, tax
// rate and the batch advancement routing.
package settingsrepo

import (
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// SettingDTO represents the database structure for one runtime setting.
type SettingDTO struct {
	Key          string `gorm:"primaryKey;size:128"`
	Value        string `gorm:"not null"`
	Type         string `gorm:"size:16;not null"`
	Description  string
	Category     string `gorm:"size:64;index"`
	DisplayOrder int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides GORM's default naming convention.
func (SettingDTO) TableName() string {
	return "runtime_settings"
}

func fromPort(setting ports.Setting) SettingDTO {
	return SettingDTO{
		Key:          setting.Key,
		Value:        setting.Value,
		Type:         string(setting.Type),
		Description:  setting.Description,
		Category:     setting.Category,
		DisplayOrder: setting.DisplayOrder,
		IsActive:     setting.IsActive,
	}
}

func toPort(dto SettingDTO) ports.Setting {
	return ports.Setting{
		Key:          dto.Key,
		Value:        dto.Value,
		Type:         ports.SettingType(dto.Type),
		Description:  dto.Description,
		Category:     dto.Category,
		DisplayOrder: dto.DisplayOrder,
		IsActive:     dto.IsActive,
	}
}
