// Package settings exposes the runtime configuration rows as typed values.
//
// Every read goes through a short-lived cache, so a changed row becomes
// visible to pricing and jobs within the cache TTL without a restart. Readers
// never fail: a missing, inactive or unparsable row yields the caller's
// default value.
package settings

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// DefaultCacheTTL bounds how long a stale setting value can be served.
const DefaultCacheTTL = 10 * time.Second

const cacheSize = 256

var ErrServiceIsNotConstructed = errors.New("Service must be created via NewService constructor")

// Service reads and writes runtime settings through a TTL cache.
type Service struct {
	settings ports.SettingsRepository
	cache    *expirable.LRU[string, *ports.Setting]
}

func NewService(settings ports.SettingsRepository, cacheTTL time.Duration) (*Service, error) {
	if settings == nil {
		return nil, errs.NewValueIsRequiredError("settings")
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Service{
		settings: settings,
		cache:    expirable.NewLRU[string, *ports.Setting](cacheSize, nil, cacheTTL),
	}, nil
}

// GetString returns the raw value of an active setting, or defaultValue.
func (s *Service) GetString(ctx context.Context, key string, defaultValue string) string {
	setting := s.lookup(ctx, key)
	if setting == nil {
		return defaultValue
	}
	return setting.Value
}

// GetInt parses the setting value as an integer, or returns defaultValue.
func (s *Service) GetInt(ctx context.Context, key string, defaultValue int) int {
	setting := s.lookup(ctx, key)
	if setting == nil {
		return defaultValue
	}

	parsed, err := strconv.Atoi(strings.TrimSpace(setting.Value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetFloat parses the setting value as a float, or returns defaultValue.
func (s *Service) GetFloat(ctx context.Context, key string, defaultValue float64) float64 {
	setting := s.lookup(ctx, key)
	if setting == nil {
		return defaultValue
	}

	parsed, err := strconv.ParseFloat(strings.TrimSpace(setting.Value), 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetBool parses the setting value as a boolean, or returns defaultValue.
func (s *Service) GetBool(ctx context.Context, key string, defaultValue bool) bool {
	setting := s.lookup(ctx, key)
	if setting == nil {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(strings.TrimSpace(setting.Value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// GetDecimal parses the setting value as an exact decimal, or returns
// defaultValue. Monetary settings must go through this reader.
func (s *Service) GetDecimal(ctx context.Context, key string, defaultValue decimal.Decimal) decimal.Decimal {
	setting := s.lookup(ctx, key)
	if setting == nil {
		return defaultValue
	}

	parsed, err := decimal.NewFromString(strings.TrimSpace(setting.Value))
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Set stores a setting and drops it from the cache, so the next read sees the
// new value immediately instead of after the TTL.
func (s *Service) Set(ctx context.Context, setting ports.Setting) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(setting.Key) == "" {
		return errs.NewValueIsRequiredError("key")
	}

	if err := s.settings.Upsert(ctx, setting); err != nil {
		return err
	}
	s.cache.Remove(setting.Key)

	return nil
}

// All lists every stored setting, bypassing the cache.
func (s *Service) All(ctx context.Context) ([]ports.Setting, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s.settings.GetAll(ctx)
}

func (s *Service) Validate() error {
	if s == nil || s.settings == nil {
		return ErrServiceIsNotConstructed
	}
	return nil
}

// lookup resolves a key to a usable setting, consulting the cache first.
// Missing keys are cached as nil to spare the store repeated lookups for
// settings that were never seeded. Store failures are not cached and fall
// back to the default for this one read.
func (s *Service) lookup(ctx context.Context, key string) *ports.Setting {
	if err := s.Validate(); err != nil {
		return nil
	}

	if cached, ok := s.cache.Get(key); ok {
		if cached == nil || !cached.IsActive {
			return nil
		}
		return cached
	}

	setting, err := s.settings.Get(ctx, key)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			s.cache.Add(key, nil)
		}
		return nil
	}

	s.cache.Add(key, setting)
	if !setting.IsActive {
		return nil
	}
	return setting
}
