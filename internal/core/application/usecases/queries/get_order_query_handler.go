package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order with items and history straight from
// the database.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	detail, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("order %s is %s\n", detail.OrderNumber, detail.StatusCode)
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. A missing order surfaces as
// errs.ErrObjectNotFound. History entries come back newest first.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	response, err := h.readOrder(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.Items, err = h.readItems(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if response.History, err = h.readHistory(ctx, query.OrderID()); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderQueryHandler) readOrder(ctx context.Context, orderID kernel.UUID) (GetOrderQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			customer_name,
			customer_email,
			customer_class,
			is_priority,
			notes,
			currency,
			status_code,
			subtotal,
			discount_amount,
			tax_amount,
			shipping_cost,
			final_amount,
			cancelled_at,
			cancelled_by,
			cancellation_reason,
			version,
			created_by,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetOrderQueryResponse{}, err
		}
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("orderID", orderID)
	}

	var response GetOrderQueryResponse
	var id uuid.UUID

	err = rows.Scan(
		&id,
		&response.OrderNumber,
		&response.CustomerName,
		&response.CustomerEmail,
		&response.CustomerClass,
		&response.IsPriority,
		&response.Notes,
		&response.Currency,
		&response.StatusCode,
		&response.Subtotal,
		&response.DiscountAmount,
		&response.TaxAmount,
		&response.ShippingCost,
		&response.FinalAmount,
		&response.CancelledAt,
		&response.CancelledBy,
		&response.CancellationReason,
		&response.Version,
		&response.CreatedBy,
		&response.CreatedAt,
		&response.UpdatedAt,
	)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}

	return response, rows.Err()
}

func (h GetOrderQueryHandler) readItems(ctx context.Context, orderID kernel.UUID) ([]OrderItemResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_code,
			product_name,
			quantity,
			unit_price,
			total_price,
			discount_amount,
			tax_amount,
			final_amount
		FROM order_items
		WHERE order_id = ?
		ORDER BY product_code
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]OrderItemResponse, 0)
	for rows.Next() {
		var item OrderItemResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&item.ProductCode,
			&item.ProductName,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
			&item.DiscountAmount,
			&item.TaxAmount,
			&item.FinalAmount,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (h GetOrderQueryHandler) readHistory(ctx context.Context, orderID kernel.UUID) ([]OrderHistoryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			sequence,
			from_status,
			to_status,
			changed_by,
			reason,
			is_automatic,
			changed_at,
			duration_seconds
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at DESC, sequence DESC
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]OrderHistoryResponse, 0)
	for rows.Next() {
		var entry OrderHistoryResponse
		var id uuid.UUID
		var duration sql.NullInt64

		err = rows.Scan(
			&id,
			&entry.Sequence,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.ChangedBy,
			&entry.Reason,
			&entry.IsAutomatic,
			&entry.ChangedAt,
			&duration,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if duration.Valid {
			entry.DurationSeconds = &duration.Int64
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
