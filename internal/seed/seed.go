// Package seed bootstraps the workflow catalog and runtime settings on first
// start. The seed is the default workflow shipped with the system; operators
// reshape it afterwards through the workflow administration API.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparrow-trajon/order-processing-system/internal/core/application/settings"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// Run seeds the status catalog, transition map and runtime settings when the
// catalog is empty. A non-empty statuses table means a previous start already
// seeded (or an operator already configured) the workflow, and Run does
// nothing.
func Run(ctx context.Context, factory ports.UnitOfWorkFactory, logger *slog.Logger) error {
	log := logger.With("component", "seed")

	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}

	existing, err := uow.StatusRepository().GetAll(ctx)
	if err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("seed catalog check: %w", err)
	}
	if len(existing) > 0 {
		_ = uow.Rollback(ctx)
		log.Info("workflow catalog already populated, skipping seed",
			"statuses", len(existing))
		return nil
	}

	if err := seedStatuses(ctx, uow.StatusRepository()); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("seed statuses: %w", err)
	}
	if err := seedTransitions(ctx, uow.TransitionRepository()); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("seed transitions: %w", err)
	}
	if err := seedSettings(ctx, uow.SettingsRepository()); err != nil {
		_ = uow.Rollback(ctx)
		return fmt.Errorf("seed settings: %w", err)
	}

	if err := uow.Commit(ctx); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	log.Info("seeded default workflow catalog and settings")
	return nil
}

func seedStatuses(ctx context.Context, repo ports.StatusRepository) error {
	rows := []struct {
		code         string
		name         string
		description  string
		displayOrder int
		flags        status.Flags
	}{
		{
			code: "PENDING", name: "Pending", displayOrder: 1,
			description: "Order received, awaiting processing",
			flags: status.Flags{
				IsCancellable: true, IsModifiable: true, SendsNotification: true,
			},
		},
		{
			code: "PROCESSING", name: "Processing", displayOrder: 2,
			description: "Order is being processed",
			flags: status.Flags{
				IsCancellable: true, TriggersInventoryReservation: true, SendsNotification: true,
			},
		},
		{
			code: "CONFIRMED", name: "Confirmed", displayOrder: 3,
			description: "Order confirmed and paid",
			flags: status.Flags{
				TriggersPayment: true, SendsNotification: true,
			},
		},
		{
			code: "PREPARING", name: "Preparing", displayOrder: 4,
			description: "Order is being prepared for shipment",
			flags: status.Flags{
				TriggersShipping: true, SendsNotification: true,
			},
		},
		{
			code: "SHIPPED", name: "Shipped", displayOrder: 5,
			description: "Order has been shipped",
			flags: status.Flags{
				TriggersShipping: true, SendsNotification: true,
			},
		},
		{
			code: "DELIVERED", name: "Delivered", displayOrder: 6,
			description: "Order delivered to the customer",
			flags: status.Flags{
				IsFinal: true, SendsNotification: true,
			},
		},
		{
			code: "COMPLETED", name: "Completed", displayOrder: 7,
			description: "Order completed",
			flags: status.Flags{
				IsFinal: true, SendsNotification: true,
			},
		},
		{
			code: "CANCELLED", name: "Cancelled", displayOrder: 8,
			description: "Order has been cancelled",
			flags: status.Flags{
				IsFinal: true, SendsNotification: true,
			},
		},
	}

	for _, row := range rows {
		s, err := status.NewStatus(row.code, row.name, row.description, row.displayOrder, row.flags)
		if err != nil {
			return err
		}
		if err := repo.Add(ctx, s); err != nil {
			return err
		}
	}

	return nil
}

func seedTransitions(ctx context.Context, repo ports.TransitionRepository) error {
	rows := []struct {
		from         string
		to           string
		displayOrder int
		description  string
		rules        status.Rules
	}{
		{from: "PENDING", to: "PROCESSING", displayOrder: 1, description: "Start processing"},
		{from: "PENDING", to: "CANCELLED", displayOrder: 2, description: "Cancel order",
			rules: status.Rules{RequiresReason: true}},
		{from: "PROCESSING", to: "CONFIRMED", displayOrder: 1, description: "Confirm order",
			rules: status.Rules{RequiresPayment: true}},
		{from: "PROCESSING", to: "CANCELLED", displayOrder: 2, description: "Cancel order",
			rules: status.Rules{RequiresReason: true}},
		{from: "CONFIRMED", to: "PREPARING", displayOrder: 1, description: "Prepare shipment",
			rules: status.Rules{RequiresInventoryCheck: true}},
		{from: "CONFIRMED", to: "CANCELLED", displayOrder: 2, description: "Cancel order",
			rules: status.Rules{RequiresReason: true}},
		{from: "PREPARING", to: "SHIPPED", displayOrder: 1, description: "Ship order"},
		{from: "SHIPPED", to: "DELIVERED", displayOrder: 1, description: "Mark delivered"},
		{from: "DELIVERED", to: "COMPLETED", displayOrder: 1, description: "Complete order"},
	}

	for _, row := range rows {
		t, err := status.NewTransition(row.from, row.to, row.displayOrder, row.description, row.rules)
		if err != nil {
			return err
		}
		if err := repo.Add(ctx, t); err != nil {
			return err
		}
	}

	return nil
}

func seedSettings(ctx context.Context, repo ports.SettingsRepository) error {
	rows := []ports.Setting{
		{Key: settings.KeyOrderMaxItems, Value: "100", Type: ports.SettingTypeInteger,
			Description: "Maximum number of lines per order", Category: "order", DisplayOrder: 1},
		{Key: settings.KeyOrderMaxQuantityPerItem, Value: "10000", Type: ports.SettingTypeInteger,
			Description: "Maximum quantity per line", Category: "order", DisplayOrder: 2},
		{Key: settings.KeyOrderAutoCancelHours, Value: "24", Type: ports.SettingTypeInteger,
			Description: "Hours before an unpaid order is auto-cancelled", Category: "order", DisplayOrder: 3},
		{Key: settings.KeyBulkDiscountThreshold, Value: "10", Type: ports.SettingTypeInteger,
			Description: "Total quantity that qualifies for the bulk discount", Category: "discount", DisplayOrder: 1},
		{Key: settings.KeyBulkDiscountPercent, Value: "5.0", Type: ports.SettingTypeDouble,
			Description: "Bulk discount percentage", Category: "discount", DisplayOrder: 2},
		{Key: settings.KeyDiscountVIPPercent, Value: "15.0", Type: ports.SettingTypeDouble,
			Description: "VIP customer discount percentage", Category: "discount", DisplayOrder: 3},
		{Key: settings.KeyDiscountWholesalePercent, Value: "10.0", Type: ports.SettingTypeDouble,
			Description: "Wholesale customer discount percentage", Category: "discount", DisplayOrder: 4},
		{Key: settings.KeyShippingFreeThreshold, Value: "100.00", Type: ports.SettingTypeDouble,
			Description: "Order amount above which shipping is free", Category: "shipping", DisplayOrder: 1},
		{Key: settings.KeyShippingStandardCost, Value: "10.00", Type: ports.SettingTypeDouble,
			Description: "Standard shipping cost", Category: "shipping", DisplayOrder: 2},
		{Key: settings.KeyShippingExpressCost, Value: "25.00", Type: ports.SettingTypeDouble,
			Description: "Express shipping cost for priority orders", Category: "shipping", DisplayOrder: 3},
		{Key: settings.KeyTaxRatePercent, Value: "10.0", Type: ports.SettingTypeDouble,
			Description: "Tax rate percentage", Category: "tax", DisplayOrder: 1},
		{Key: settings.KeyAdvanceSourceStatus, Value: "PENDING", Type: ports.SettingTypeString,
			Description: "Status the advancement job sweeps from", Category: "jobs", DisplayOrder: 1},
		{Key: settings.KeyAdvanceTargetStatus, Value: "PROCESSING", Type: ports.SettingTypeString,
			Description: "Status the advancement job sweeps to", Category: "jobs", DisplayOrder: 2},
	}

	for _, row := range rows {
		row.IsActive = true
		if err := repo.Upsert(ctx, row); err != nil {
			return err
		}
	}

	return nil
}
