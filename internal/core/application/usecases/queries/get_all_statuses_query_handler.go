package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAllStatusesQueryHandler lists the status catalog from the database.
type GetAllStatusesQueryHandler struct {
	db *gorm.DB
}

// NewGetAllStatusesQueryHandler creates a handler for catalog listings.
func NewGetAllStatusesQueryHandler(db *gorm.DB) GetAllStatusesQueryHandler {
	return GetAllStatusesQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAllStatusesQueryHandler) Handle(
	ctx context.Context,
	query GetAllStatusesQuery,
) ([]GetAllStatusesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			code,
			name,
			description,
			display_order,
			is_final,
			is_cancellable,
			is_modifiable,
			triggers_payment,
			triggers_inventory_reservation,
			triggers_shipping,
			sends_notification,
			is_active
		FROM statuses
	`
	if !query.IncludeInactive() {
		sql += " WHERE is_active"
	}
	sql += " ORDER BY display_order, code"

	rows, err := h.db.WithContext(ctx).Raw(sql).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]GetAllStatusesQueryResponse, 0)
	for rows.Next() {
		var response GetAllStatusesQueryResponse

		err = rows.Scan(
			&response.Code,
			&response.Name,
			&response.Description,
			&response.DisplayOrder,
			&response.IsFinal,
			&response.IsCancellable,
			&response.IsModifiable,
			&response.TriggersPayment,
			&response.TriggersInventoryReservation,
			&response.TriggersShipping,
			&response.SendsNotification,
			&response.IsActive,
		)
		if err != nil {
			return nil, err
		}

		statuses = append(statuses, response)
	}

	return statuses, rows.Err()
}
