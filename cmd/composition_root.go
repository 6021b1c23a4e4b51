package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/settingsrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/statusrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/transitionrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/registry"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/settings"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/commands"
	"github.com/sparrow-trajon/order-processing-system/internal/core/application/usecases/queries"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/services"
	"github.com/sparrow-trajon/order-processing-system/internal/core/ports"
)

// CompositionRoot wires adapters, application services and handlers together.
// Command handlers get fresh unit of work instances per call; queries and the
// cached catalog read through the shared connection pool.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	registry        *registry.StatusRegistry
	settingsService *settings.Service
	pricingEngine   *services.PricingEngine
	limits          *settings.Limits
	routing         *settings.AdvanceRouting
	publisher       ports.EventPublisher
	logger          *slog.Logger
}

// NewCompositionRoot builds the object graph on top of an open database
// connection and a chosen event publisher.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	statusRegistry, err := registry.NewStatusRegistry(
		statusrepo.NewGormStatusRepository(gormDB),
		transitionrepo.NewGormTransitionRepository(gormDB),
	)
	if err != nil {
		return nil, err
	}

	settingsService, err := settings.NewService(
		settingsrepo.NewGormSettingsRepository(gormDB), config.SettingsCacheTTL)
	if err != nil {
		return nil, err
	}

	pricingConfig, err := settings.NewPricingConfig(settingsService)
	if err != nil {
		return nil, err
	}
	pricingEngine, err := services.NewPricingEngine(pricingConfig)
	if err != nil {
		return nil, err
	}
	limits, err := settings.NewLimits(settingsService)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		gormDB:          gormDB,
		uowFactory:      *postgres.NewGormUnitOfWorkFactory(gormDB),
		registry:        statusRegistry,
		settingsService: settingsService,
		pricingEngine:   pricingEngine,
		limits:          limits,
		routing:         settings.NewAdvanceRouting(settingsService),
		publisher:       publisher,
		logger:          logger,
	}, nil
}

// UnitOfWorkFactory exposes the transactional factory for bootstrap tasks.
func (c *CompositionRoot) UnitOfWorkFactory() ports.UnitOfWorkFactory {
	return &c.uowFactory
}

// AdvanceRouting exposes the advancement sweep routing reader.
func (c *CompositionRoot) AdvanceRouting() *settings.AdvanceRouting {
	return c.routing
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.registry, c.pricingEngine, c.limits, c.publisher)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f, c.registry, c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.registry, c.publisher)
}

func (c *CompositionRoot) CreateAddOrderItemCommandHandler() commands.AddOrderItemCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddOrderItemCommandHandler(f, c.pricingEngine, c.limits)
}

func (c *CompositionRoot) CreateRemoveOrderItemCommandHandler() commands.RemoveOrderItemCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRemoveOrderItemCommandHandler(f, c.pricingEngine)
}

func (c *CompositionRoot) CreateRecordPaymentCommandHandler() commands.RecordPaymentCommandHandler {
	var f commands.OrderPaymentUoWFactory = FuncOrderPaymentUoWFactory(func() commands.OrderPaymentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecordPaymentCommandHandler(f)
}

func (c *CompositionRoot) CreateAdvanceOrdersCommandHandler() commands.AdvanceOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceOrdersCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateCreateStatusCommandHandler() commands.CreateStatusCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateStatusCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateUpdateStatusCommandHandler() commands.UpdateStatusCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateStatusCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateCreateTransitionCommandHandler() commands.CreateTransitionCommandHandler {
	var f commands.WorkflowUoWFactory = FuncWorkflowUoWFactory(func() commands.WorkflowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTransitionCommandHandler(f, c.registry)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAllStatusesQueryHandler() queries.GetAllStatusesQueryHandler {
	return queries.NewGetAllStatusesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTransitionsFromQueryHandler() queries.GetTransitionsFromQueryHandler {
	return queries.NewGetTransitionsFromQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderPaymentUoWFactory func() commands.OrderPaymentUoW

func (f FuncOrderPaymentUoWFactory) Create() commands.OrderPaymentUoW {
	return f()
}

type FuncWorkflowUoWFactory func() commands.WorkflowUoW

func (f FuncWorkflowUoWFactory) Create() commands.WorkflowUoW {
	return f()
}
