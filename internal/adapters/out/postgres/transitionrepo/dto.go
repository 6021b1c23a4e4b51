// Package transitionrepo persists the workflow graph edges: which status
// pairs an order may move between, and what each move demands.
package transitionrepo

import (
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// TransitionDTO represents the database structure for a workflow edge.
// The (from_status, to_status) pair is the primary key, so a duplicate edge
// is impossible at the storage level.
type TransitionDTO struct {
	FromStatus             string `gorm:"primaryKey;size:64"`
	ToStatus               string `gorm:"primaryKey;size:64"`
	IsAllowed              bool
	RequiresApproval       bool
	RequiresPayment        bool
	RequiresInventoryCheck bool
	RequiresReason         bool
	DisplayOrder           int `gorm:"index"`
	Description            string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName overrides GORM's default naming convention.
func (TransitionDTO) TableName() string {
	return "status_transitions"
}

func fromDomain(t *status.Transition) TransitionDTO {
	rules := t.Rules()
	return TransitionDTO{
		FromStatus:             t.FromCode(),
		ToStatus:               t.ToCode(),
		IsAllowed:              t.IsAllowed(),
		RequiresApproval:       rules.RequiresApproval,
		RequiresPayment:        rules.RequiresPayment,
		RequiresInventoryCheck: rules.RequiresInventoryCheck,
		RequiresReason:         rules.RequiresReason,
		DisplayOrder:           t.DisplayOrder(),
		Description:            t.Description(),
	}
}

func toDomain(dto TransitionDTO) (*status.Transition, error) {
	return status.RestoreTransition(
		dto.FromStatus,
		dto.ToStatus,
		dto.DisplayOrder,
		dto.Description,
		status.Rules{
			RequiresApproval:       dto.RequiresApproval,
			RequiresPayment:        dto.RequiresPayment,
			RequiresInventoryCheck: dto.RequiresInventoryCheck,
			RequiresReason:         dto.RequiresReason,
		},
		dto.IsAllowed,
	)
}
