// Package statusrepo persists the status catalog: the data-defined states of
// the order workflow. Rows are keyed by code and managed by admin commands;
// the registry caches reads on top of this repository.
package statusrepo

import (
	"time"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// StatusDTO represents the database structure for a catalog status.
type StatusDTO struct {
	Code                         string `gorm:"primaryKey;size:64"`
	Name                         string `gorm:"size:128;not null"`
	Description                  string
	DisplayOrder                 int `gorm:"index"`
	IsFinal                      bool
	IsCancellable                bool
	IsModifiable                 bool
	TriggersPayment              bool
	TriggersInventoryReservation bool
	TriggersShipping             bool
	SendsNotification            bool
	IsActive                     bool `gorm:"index"`
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

// TableName overrides GORM's default naming convention.
func (StatusDTO) TableName() string {
	return "statuses"
}

func fromDomain(s *status.Status) StatusDTO {
	flags := s.Flags()
	return StatusDTO{
		Code:                         s.Code(),
		Name:                         s.Name(),
		Description:                  s.Description(),
		DisplayOrder:                 s.DisplayOrder(),
		IsFinal:                      flags.IsFinal,
		IsCancellable:                flags.IsCancellable,
		IsModifiable:                 flags.IsModifiable,
		TriggersPayment:              flags.TriggersPayment,
		TriggersInventoryReservation: flags.TriggersInventoryReservation,
		TriggersShipping:             flags.TriggersShipping,
		SendsNotification:            flags.SendsNotification,
		IsActive:                     s.IsActive(),
	}
}

func toDomain(dto StatusDTO) (*status.Status, error) {
	return status.RestoreStatus(
		dto.Code,
		dto.Name,
		dto.Description,
		dto.DisplayOrder,
		status.Flags{
			IsFinal:                      dto.IsFinal,
			IsCancellable:                dto.IsCancellable,
			IsModifiable:                 dto.IsModifiable,
			TriggersPayment:              dto.TriggersPayment,
			TriggersInventoryReservation: dto.TriggersInventoryReservation,
			TriggersShipping:             dto.TriggersShipping,
			SendsNotification:            dto.SendsNotification,
		},
		dto.IsActive,
	)
}
