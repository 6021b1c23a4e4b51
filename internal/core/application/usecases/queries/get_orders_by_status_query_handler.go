package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
)

// GetOrdersByStatusQueryHandler lists orders in a workflow status from the
// database, with a line count per order.
type GetOrdersByStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByStatusQueryHandler creates a handler for status listings.
func NewGetOrdersByStatusQueryHandler(db *gorm.DB) GetOrdersByStatusQueryHandler {
	return GetOrdersByStatusQueryHandler{db: db}
}

// Handle executes the query. An unknown status code simply yields an empty
// slice; listings do not distinguish "no such status" from "nothing there".
func (h GetOrdersByStatusQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStatusQuery,
) ([]GetOrdersByStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.customer_name,
			o.customer_class,
			o.is_priority,
			o.currency,
			o.status_code,
			o.final_amount,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id) AS item_count,
			o.created_at
		FROM orders o
		WHERE o.status_code = ?
		ORDER BY o.created_at, o.id
	`, query.StatusCode()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetOrdersByStatusQueryResponse, 0)
	for rows.Next() {
		var response GetOrdersByStatusQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.OrderNumber,
			&response.CustomerName,
			&response.CustomerClass,
			&response.IsPriority,
			&response.Currency,
			&response.StatusCode,
			&response.FinalAmount,
			&response.ItemCount,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		orders = append(orders, response)
	}

	return orders, rows.Err()
}
