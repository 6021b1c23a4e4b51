package settings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/settings"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, setting ports.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (*ports.Setting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.Setting), args.Error(1)
}

func (m *MockSettingsRepository) GetAll(ctx context.Context) ([]ports.Setting, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.Setting), args.Error(1)
}

func activeSetting(key string, value string) *ports.Setting {
	return &ports.Setting{
		Key:      key,
		Value:    value,
		Type:     ports.SettingTypeString,
		IsActive: true,
	}
}

func mustService(t *testing.T, repo ports.SettingsRepository) *settings.Service {
	t.Helper()

	service, err := settings.NewService(repo, settings.DefaultCacheTTL)
	require.NoError(t, err)

	return service
}

func TestNewService(t *testing.T) {
	t.Run("should create service", func(t *testing.T) {
		service, err := settings.NewService(&MockSettingsRepository{}, time.Second)

		require.NoError(t, err)
		assert.NoError(t, service.Validate())
	})

	t.Run("should apply default TTL when none is given", func(t *testing.T) {
		service, err := settings.NewService(&MockSettingsRepository{}, 0)

		require.NoError(t, err)
		assert.NoError(t, service.Validate())
	})

	t.Run("should fail without repository", func(t *testing.T) {
		_, err := settings.NewService(nil, time.Second)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestService_TypedGetters(t *testing.T) {
	t.Run("should return stored values", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, settings.KeyTaxRatePercent).
			Return(activeSetting(settings.KeyTaxRatePercent, "12.5"), nil).Once()
		repo.On("Get", mock.Anything, settings.KeyOrderMaxItems).
			Return(activeSetting(settings.KeyOrderMaxItems, "50"), nil).Once()
		repo.On("Get", mock.Anything, "feature.email.notifications.enabled").
			Return(activeSetting("feature.email.notifications.enabled", "false"), nil).Once()
		repo.On("Get", mock.Anything, settings.KeyAdvanceTargetStatus).
			Return(activeSetting(settings.KeyAdvanceTargetStatus, "SHIPPED"), nil).Once()
		repo.On("Get", mock.Anything, settings.KeyShippingFreeThreshold).
			Return(activeSetting(settings.KeyShippingFreeThreshold, "250.00"), nil).Once()
		service := mustService(t, repo)

		assert.InDelta(t, 12.5, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		assert.Equal(t, 50, service.GetInt(t.Context(), settings.KeyOrderMaxItems, 100))
		assert.False(t, service.GetBool(t.Context(), "feature.email.notifications.enabled", true))
		assert.Equal(t, "SHIPPED", service.GetString(t.Context(), settings.KeyAdvanceTargetStatus, "PROCESSING"))
		assert.True(t, decimal.RequireFromString("250.00").
			Equal(service.GetDecimal(t.Context(), settings.KeyShippingFreeThreshold, settings.DefaultShippingFreeThreshold)))
		repo.AssertExpectations(t)
	})

	t.Run("should fall back when key is missing", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, settings.KeyBulkDiscountThreshold).
			Return(nil, errs.NewObjectNotFoundError("key", settings.KeyBulkDiscountThreshold)).Once()
		service := mustService(t, repo)

		assert.Equal(t, 10, service.GetInt(t.Context(), settings.KeyBulkDiscountThreshold, 10))
		// The miss is cached, so the second read must not hit the store.
		assert.Equal(t, 10, service.GetInt(t.Context(), settings.KeyBulkDiscountThreshold, 10))
		repo.AssertExpectations(t)
	})

	t.Run("should fall back when row is inactive", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		inactive := activeSetting(settings.KeyTaxRatePercent, "99.0")
		inactive.IsActive = false
		repo.On("Get", mock.Anything, settings.KeyTaxRatePercent).Return(inactive, nil).Once()
		service := mustService(t, repo)

		assert.InDelta(t, 10.0, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		repo.AssertExpectations(t)
	})

	t.Run("should fall back when value does not parse", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, settings.KeyOrderMaxItems).
			Return(activeSetting(settings.KeyOrderMaxItems, "a lot"), nil).Once()
		service := mustService(t, repo)

		assert.Equal(t, 100, service.GetInt(t.Context(), settings.KeyOrderMaxItems, 100))
		repo.AssertExpectations(t)
	})

	t.Run("should fall back when the store fails without caching the failure", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, settings.KeyTaxRatePercent).
			Return(nil, errors.New("connection refused")).Twice()
		service := mustService(t, repo)

		assert.InDelta(t, 10.0, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		assert.InDelta(t, 10.0, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		repo.AssertExpectations(t)
	})
}

func TestService_Cache(t *testing.T) {
	t.Run("should serve repeated reads from cache", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, settings.KeyTaxRatePercent).
			Return(activeSetting(settings.KeyTaxRatePercent, "12.5"), nil).Once()
		service := mustService(t, repo)

		for range 5 {
			assert.InDelta(t, 12.5, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		}
		repo.AssertExpectations(t)
	})

	t.Run("should see a new value immediately after Set", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		updated := ports.Setting{
			Key:      settings.KeyTaxRatePercent,
			Value:    "15.0",
			Type:     ports.SettingTypeDouble,
			IsActive: true,
		}
		firstRead := repo.On("Get", mock.Anything, settings.KeyTaxRatePercent).
			Return(activeSetting(settings.KeyTaxRatePercent, "12.5"), nil).Once()
		upsert := repo.On("Upsert", mock.Anything, updated).Return(nil).Once()
		secondRead := repo.On("Get", mock.Anything, settings.KeyTaxRatePercent).
			Return(&updated, nil).Once()
		mock.InOrder(firstRead, upsert, secondRead)
		service := mustService(t, repo)

		assert.InDelta(t, 12.5, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		require.NoError(t, service.Set(t.Context(), updated))
		assert.InDelta(t, 15.0, service.GetFloat(t.Context(), settings.KeyTaxRatePercent, 10.0), 0.0001)
		repo.AssertExpectations(t)
	})
}

func TestService_Set(t *testing.T) {
	t.Run("should reject a blank key", func(t *testing.T) {
		service := mustService(t, &MockSettingsRepository{})

		err := service.Set(t.Context(), ports.Setting{Key: "   ", Value: "1"})

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should surface store errors", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
		service := mustService(t, repo)

		err := service.Set(t.Context(), ports.Setting{Key: settings.KeyTaxRatePercent, Value: "11.0"})

		assert.ErrorContains(t, err, "connection refused")
		repo.AssertExpectations(t)
	})
}

func TestService_All(t *testing.T) {
	t.Run("should list settings from the store", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		stored := []ports.Setting{
			*activeSetting(settings.KeyTaxRatePercent, "10.0"),
			*activeSetting(settings.KeyShippingStandardCost, "10.00"),
		}
		repo.On("GetAll", mock.Anything).Return(stored, nil).Once()
		service := mustService(t, repo)

		all, err := service.All(t.Context())

		require.NoError(t, err)
		assert.Equal(t, stored, all)
		repo.AssertExpectations(t)
	})
}

func TestPricingConfig(t *testing.T) {
	t.Run("should serve compiled defaults from an empty store", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("key", "any"))
		config, err := settings.NewPricingConfig(mustService(t, repo))
		require.NoError(t, err)

		assert.InDelta(t, 0.0, config.ClassDiscountPercent(t.Context(), order.CustomerClassRetail), 0.0001)
		assert.InDelta(t, 10.0, config.ClassDiscountPercent(t.Context(), order.CustomerClassWholesale), 0.0001)
		assert.InDelta(t, 15.0, config.ClassDiscountPercent(t.Context(), order.CustomerClassVIP), 0.0001)
		assert.InDelta(t, 20.0, config.ClassDiscountPercent(t.Context(), order.CustomerClassCorporate), 0.0001)
		assert.Equal(t, 10, config.BulkDiscountThreshold(t.Context()))
		assert.InDelta(t, 5.0, config.BulkDiscountPercent(t.Context()), 0.0001)
		assert.InDelta(t, 10.0, config.TaxRatePercent(t.Context()), 0.0001)
		assert.True(t, decimal.RequireFromString("100.00").Equal(config.FreeShippingThreshold(t.Context())))
		assert.True(t, decimal.RequireFromString("10.00").Equal(config.StandardShippingCost(t.Context())))
		assert.True(t, decimal.RequireFromString("25.00").Equal(config.ExpressShippingCost(t.Context())))
	})

	t.Run("should serve stored values over defaults", func(t *testing.T) {
		repo := &MockSettingsRepository{}
		repo.On("Get", mock.Anything, settings.KeyDiscountVIPPercent).
			Return(activeSetting(settings.KeyDiscountVIPPercent, "17.5"), nil).Once()
		repo.On("Get", mock.Anything, settings.KeyShippingExpressCost).
			Return(activeSetting(settings.KeyShippingExpressCost, "30.00"), nil).Once()
		config, err := settings.NewPricingConfig(mustService(t, repo))
		require.NoError(t, err)

		assert.InDelta(t, 17.5, config.ClassDiscountPercent(t.Context(), order.CustomerClassVIP), 0.0001)
		assert.True(t, decimal.RequireFromString("30.00").Equal(config.ExpressShippingCost(t.Context())))
		repo.AssertExpectations(t)
	})

	t.Run("should fail without service", func(t *testing.T) {
		_, err := settings.NewPricingConfig(nil)

		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
