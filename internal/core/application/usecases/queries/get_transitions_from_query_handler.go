package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetTransitionsFromQueryHandler lists allowed outbound workflow edges from
// the database.
type GetTransitionsFromQueryHandler struct {
	db *gorm.DB
}

// NewGetTransitionsFromQueryHandler creates a handler for edge listings.
func NewGetTransitionsFromQueryHandler(db *gorm.DB) GetTransitionsFromQueryHandler {
	return GetTransitionsFromQueryHandler{db: db}
}

// Handle executes the query. Disallowed edges are filtered out; an unknown
// source code yields an empty slice.
func (h GetTransitionsFromQueryHandler) Handle(
	ctx context.Context,
	query GetTransitionsFromQuery,
) ([]GetTransitionsFromQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			from_status,
			to_status,
			display_order,
			description,
			requires_approval,
			requires_payment,
			requires_inventory_check,
			requires_reason
		FROM status_transitions
		WHERE from_status = ? AND is_allowed
		ORDER BY display_order, to_status
	`, query.FromCode()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transitions := make([]GetTransitionsFromQueryResponse, 0)
	for rows.Next() {
		var response GetTransitionsFromQueryResponse

		err = rows.Scan(
			&response.FromStatus,
			&response.ToStatus,
			&response.DisplayOrder,
			&response.Description,
			&response.RequiresApproval,
			&response.RequiresPayment,
			&response.RequiresInventoryCheck,
			&response.RequiresReason,
		)
		if err != nil {
			return nil, err
		}

		transitions = append(transitions, response)
	}

	return transitions, rows.Err()
}
