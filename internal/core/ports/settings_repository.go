package ports

import (
	"context"
)

// SettingType tells consumers how to interpret a setting's string value.
type SettingType string

const (
	SettingTypeString  SettingType = "STRING"
	SettingTypeInteger SettingType = "INTEGER"
	SettingTypeDouble  SettingType = "DOUBLE"
	SettingTypeBoolean SettingType = "BOOLEAN"
)

// Setting is one runtime configuration row. Settings tune business behavior
// (discount percentages, thresholds, job routing) without a redeploy; typed
// readers fall back to compiled defaults when a key is missing, inactive or
// unparsable.
type Setting struct {
	Key          string
	Value        string
	Type         SettingType
	Description  string
	Category     string
	DisplayOrder int
	IsActive     bool
}

// SettingsRepository defines the persistence contract for runtime settings.
type SettingsRepository interface {
	// Upsert inserts the setting or overwrites the row with the same key.
	Upsert(ctx context.Context, setting Setting) error

	// Get retrieves a setting by key, active or not.
	// A missing key surfaces as errs.ErrObjectNotFound.
	Get(ctx context.Context, key string) (*Setting, error)

	// GetAll retrieves every setting ordered by category, then display order.
	GetAll(ctx context.Context) ([]Setting, error)
}
