// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. The order aggregate owns its line items and its status
// history; both live in child tables that are written together with the order
// row inside the unit of work.
package orderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/order"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The version column is the optimistic concurrency counter: updates match on
// it and increment it, so a concurrent writer makes the second update miss.
type OrderDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber        string    `gorm:"size:32;uniqueIndex;not null"`
	CustomerName       string    `gorm:"size:255;not null"`
	CustomerEmail      string    `gorm:"size:255;not null"`
	CustomerClass      string    `gorm:"size:16;not null"`
	IsPriority         bool
	Notes              string
	Currency           string          `gorm:"size:3;not null"`
	StatusCode         string          `gorm:"size:64;index;not null"`
	Subtotal           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TaxAmount          decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	ShippingCost       decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FinalAmount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CancelledAt        *time.Time
	CancelledBy        string `gorm:"size:255"`
	CancellationReason string
	Version            int64  `gorm:"not null"`
	CreatedBy          string `gorm:"size:255"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Items   []ItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	History []HistoryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one order line. Unit price is an immutable snapshot;
// discount, tax and final amount are the informative per-line pricing figures.
type ItemDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductCode    string          `gorm:"size:64;not null"`
	ProductName    string          `gorm:"size:255;not null"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalPrice     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	FinalAmount    decimal.Decimal `gorm:"type:numeric(14,2);not null"`
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// HistoryDTO represents one audit trail entry. Rows are append-only: once
// written, only duration_seconds may change, backfilled when the next entry
// is appended.
type HistoryDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;index;not null"`
	Sequence        int       `gorm:"not null"`
	FromStatus      string    `gorm:"size:64"`
	ToStatus        string    `gorm:"size:64;not null"`
	ChangedBy       string    `gorm:"size:255;not null"`
	Reason          string
	IsAutomatic     bool
	ChangedAt       time.Time `gorm:"index;not null"`
	DurationSeconds *int64
}

// TableName specifies the database table name for audit trail entries.
func (HistoryDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order aggregate to its database representation.
// The created_by column mirrors the actor of the birth history entry.
func fromDomain(aggregate *order.Order) OrderDTO {
	history := aggregate.History()

	createdBy := ""
	if len(history) > 0 {
		createdBy = history[0].ChangedBy()
	}

	dto := OrderDTO{
		ID:                 aggregate.ID().Bytes(),
		OrderNumber:        aggregate.OrderNumber().Value(),
		CustomerName:       aggregate.CustomerName(),
		CustomerEmail:      aggregate.CustomerEmail().Value(),
		CustomerClass:      aggregate.CustomerClass().String(),
		IsPriority:         aggregate.IsPriority(),
		Notes:              aggregate.Notes(),
		Currency:           aggregate.Currency(),
		StatusCode:         aggregate.Status().Code(),
		Subtotal:           aggregate.Subtotal().Amount(),
		DiscountAmount:     aggregate.Discount().Amount(),
		TaxAmount:          aggregate.Tax().Amount(),
		ShippingCost:       aggregate.Shipping().Amount(),
		FinalAmount:        aggregate.FinalAmount().Amount(),
		CancelledAt:        aggregate.CancelledAt(),
		CancelledBy:        aggregate.CancelledBy(),
		CancellationReason: aggregate.CancellationReason(),
		Version:            aggregate.Version(),
		CreatedBy:          createdBy,
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, itemFromDomain(aggregate.ID(), item))
	}
	for _, entry := range history {
		dto.History = append(dto.History, historyFromDomain(aggregate.ID(), entry))
	}

	return dto
}

func itemFromDomain(orderID kernel.UUID, item *order.Item) ItemDTO {
	return ItemDTO{
		ID:             item.ID().Bytes(),
		OrderID:        orderID.Bytes(),
		ProductCode:    item.ProductCode(),
		ProductName:    item.ProductName(),
		Quantity:       item.Quantity().Value(),
		UnitPrice:      item.UnitPrice().Amount(),
		TotalPrice:     item.TotalPrice().Amount(),
		DiscountAmount: item.Discount().Amount(),
		TaxAmount:      item.Tax().Amount(),
		FinalAmount:    item.FinalAmount().Amount(),
	}
}

func historyFromDomain(orderID kernel.UUID, entry *order.StatusHistory) HistoryDTO {
	var duration *int64
	if d := entry.DurationInStatus(); d != nil {
		seconds := int64(d.Seconds())
		duration = &seconds
	}

	return HistoryDTO{
		ID:              entry.ID().Bytes(),
		OrderID:         orderID.Bytes(),
		Sequence:        entry.Sequence(),
		FromStatus:      entry.FromCode(),
		ToStatus:        entry.ToCode(),
		ChangedBy:       entry.ChangedBy(),
		Reason:          entry.Reason(),
		IsAutomatic:     entry.IsAutomatic(),
		ChangedAt:       entry.ChangedAt(),
		DurationSeconds: duration,
	}
}

// toDomain converts a database DTO and its resolved status row to an order
// aggregate using RestoreOrder.
func toDomain(dto OrderDTO, current *status.Status) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.NewOrderNumber(dto.OrderNumber)
	if err != nil {
		return nil, err
	}
	email, err := kernel.NewEmail(dto.CustomerEmail)
	if err != nil {
		return nil, err
	}

	money := func(amount decimal.Decimal) (kernel.Money, error) {
		return kernel.NewMoney(amount, dto.Currency)
	}
	subtotal, err := money(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	discount, err := money(dto.DiscountAmount)
	if err != nil {
		return nil, err
	}
	tax, err := money(dto.TaxAmount)
	if err != nil {
		return nil, err
	}
	shipping, err := money(dto.ShippingCost)
	if err != nil {
		return nil, err
	}
	finalAmount, err := money(dto.FinalAmount)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO, dto.Currency)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	history := make([]*order.StatusHistory, 0, len(dto.History))
	for _, historyDTO := range dto.History {
		entry, historyErr := historyToDomain(historyDTO)
		if historyErr != nil {
			return nil, historyErr
		}
		history = append(history, entry)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:                 id,
		OrderNumber:        number,
		CustomerName:       dto.CustomerName,
		CustomerEmail:      email,
		CustomerClass:      order.CustomerClass(dto.CustomerClass),
		IsPriority:         dto.IsPriority,
		Notes:              dto.Notes,
		Currency:           dto.Currency,
		Status:             current,
		Items:              items,
		Subtotal:           subtotal,
		Discount:           discount,
		Tax:                tax,
		Shipping:           shipping,
		FinalAmount:        finalAmount,
		History:            history,
		CancelledAt:        dto.CancelledAt,
		CancelledBy:        dto.CancelledBy,
		CancellationReason: dto.CancellationReason,
		Version:            dto.Version,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}

func itemToDomain(dto ItemDTO, currency string) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	quantity, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}

	money := func(amount decimal.Decimal) (kernel.Money, error) {
		return kernel.NewMoney(amount, currency)
	}
	unitPrice, err := money(dto.UnitPrice)
	if err != nil {
		return nil, err
	}
	totalPrice, err := money(dto.TotalPrice)
	if err != nil {
		return nil, err
	}
	discount, err := money(dto.DiscountAmount)
	if err != nil {
		return nil, err
	}
	tax, err := money(dto.TaxAmount)
	if err != nil {
		return nil, err
	}
	finalAmount, err := money(dto.FinalAmount)
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(
		id, dto.ProductCode, dto.ProductName, quantity,
		unitPrice, totalPrice, discount, tax, finalAmount,
	)
}

func historyToDomain(dto HistoryDTO) (*order.StatusHistory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var duration *time.Duration
	if dto.DurationSeconds != nil {
		d := time.Duration(*dto.DurationSeconds) * time.Second
		duration = &d
	}

	return order.RestoreStatusHistory(
		id, dto.Sequence, dto.FromStatus, dto.ToStatus,
		dto.ChangedBy, dto.ChangedAt, dto.Reason, dto.IsAutomatic, duration,
	)
}
