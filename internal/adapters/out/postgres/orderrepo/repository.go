package orderrepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/pgerrors"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// statusResolver resolves the catalog status row an order references.
// The unit of work passes the status repository bound to the same transaction.
type statusResolver interface {
	GetByCode(ctx context.Context, code string) (*status.Status, error)
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db       *gorm.DB
	statuses statusResolver
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, statuses statusResolver) *GormOrderRepository {
	return &GormOrderRepository{
		db:       db,
		statuses: statuses,
	}
}

// Add saves a new order to the database: the order row, its lines and the
// birth history entry in one go.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause(
				"orderNumber", aggregate.OrderNumber().Value(), err)
		}
		return pgerrors.Classify("order insert", err)
	}

	return nil
}

// Update saves an existing order under the optimistic concurrency check.
//
// The order row is matched by id AND the version the aggregate was loaded
// with, and the stored version is incremented in the same statement. Zero
// rows hit means another writer got there first: errs.ErrOptimisticConflict.
// Lines are upserted and orphans removed; history rows are insert-only except
// for the duration backfill on the previous entry.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status_code":         dto.StatusCode,
			"is_priority":         dto.IsPriority,
			"notes":               dto.Notes,
			"subtotal":            dto.Subtotal,
			"discount_amount":     dto.DiscountAmount,
			"tax_amount":          dto.TaxAmount,
			"shipping_cost":       dto.ShippingCost,
			"final_amount":        dto.FinalAmount,
			"cancelled_at":        dto.CancelledAt,
			"cancelled_by":        dto.CancelledBy,
			"cancellation_reason": dto.CancellationReason,
			"version":             dto.Version + 1,
			"updated_at":          time.Now().UTC(),
		})
	if result.Error != nil {
		return pgerrors.Classify("order update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewOptimisticConflictError("order", aggregate.ID().String(), aggregate.Version())
	}

	if err := r.saveItems(ctx, dto); err != nil {
		return err
	}
	return r.saveHistory(ctx, dto)
}

// Get retrieves an order by ID with its lines, history and resolved status.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "id = ?", id.Bytes())
}

// GetByNumber retrieves an order by its human-facing number.
func (r *GormOrderRepository) GetByNumber(
	ctx context.Context, number kernel.OrderNumber,
) (*order.Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	return r.getOne(ctx, "order_number = ?", number.Value())
}

// GetAllInStatus retrieves all orders currently in the given status, ordered
// by creation time.
func (r *GormOrderRepository) GetAllInStatus(
	ctx context.Context, statusCode string,
) ([]*order.Order, error) {
	if statusCode == "" {
		return nil, errs.NewValueIsRequiredError("statusCode")
	}

	var dtos []OrderDTO
	err := r.preloaded(ctx).
		Where("status_code = ?", statusCode).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrors.Classify("order list", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, restoreErr := r.restore(ctx, dto)
		if restoreErr != nil {
			return nil, restoreErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// AdvanceAllInStatus moves every order in fromCode to toCode in one bulk
// statement and returns the number of orders moved.
//
// The statement is deliberately blunt: it matches on the status predicate
// alone, reads no versions, bumps none, and appends no history entries. An
// operator update committed between an order's read and the sweep is silently
// overtaken. That trade is confined to the unconditional advancement edge the
// batch job is configured with.
func (r *GormOrderRepository) AdvanceAllInStatus(
	ctx context.Context, fromCode string, toCode string,
) (int64, error) {
	if fromCode == "" {
		return 0, errs.NewValueIsRequiredError("fromCode")
	}
	if toCode == "" {
		return 0, errs.NewValueIsRequiredError("toCode")
	}

	result := r.db.WithContext(ctx).Exec(
		"UPDATE orders SET status_code = ?, updated_at = ? WHERE status_code = ?",
		toCode, time.Now().UTC(), fromCode,
	)
	if result.Error != nil {
		return 0, pgerrors.Classify("order bulk advance", result.Error)
	}

	return result.RowsAffected, nil
}

func (r *GormOrderRepository) getOne(ctx context.Context, query string, arg any) (*order.Order, error) {
	var dto OrderDTO
	if err := r.preloaded(ctx).First(&dto, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", arg)
		}
		return nil, pgerrors.Classify("order select", err)
	}

	return r.restore(ctx, dto)
}

func (r *GormOrderRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_code, id")
		}).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence")
		})
}

func (r *GormOrderRepository) restore(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	current, err := r.statuses.GetByCode(ctx, dto.StatusCode)
	if err != nil {
		return nil, err
	}

	return toDomain(dto, current)
}

// saveItems upserts the aggregate's current lines and removes lines that were
// dropped from the order.
func (r *GormOrderRepository) saveItems(ctx context.Context, dto OrderDTO) error {
	ids := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		ids = append(ids, item.ID)
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"quantity", "total_price", "discount_amount", "tax_amount", "final_amount",
			}),
		}).
		Create(&dto.Items).Error
	if err != nil {
		return pgerrors.Classify("order items upsert", err)
	}

	err = r.db.WithContext(ctx).
		Where("order_id = ? AND id NOT IN ?", dto.ID, ids).
		Delete(&ItemDTO{}).Error
	if err != nil {
		return pgerrors.Classify("order items prune", err)
	}

	return nil
}

// saveHistory inserts new audit entries. Existing rows accept only the
// duration backfill; everything else about them is immutable.
func (r *GormOrderRepository) saveHistory(ctx context.Context, dto OrderDTO) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"duration_seconds"}),
		}).
		Create(&dto.History).Error
	if err != nil {
		return pgerrors.Classify("order history append", err)
	}

	return nil
}
