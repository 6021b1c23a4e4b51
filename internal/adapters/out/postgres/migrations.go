package postgres

import (
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/orderrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/paymentrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/settingsrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/statusrepo"
	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/transitionrepo"
)

// Migrate creates or updates the schema for every workflow table. Catalog
// tables come first so the order tables can reference their status codes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&statusrepo.StatusDTO{},
		&transitionrepo.TransitionDTO{},
		&settingsrepo.SettingDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryDTO{},
		&paymentrepo.PaymentDTO{},
	)
}
