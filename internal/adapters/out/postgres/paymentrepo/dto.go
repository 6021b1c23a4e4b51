// Package paymentrepo persists payment records. The workflow core never
// initiates payments; it only sums the successful ones to answer "is this
// order fully paid" for payment-gated transitions.
package paymentrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/payment"
)

// PaymentDTO represents the database structure for one payment record.
type PaymentDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount        decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Currency      string          `gorm:"size:3;not null"`
	Method        string          `gorm:"size:32;not null"`
	Status        string          `gorm:"size:32;not null;index"`
	TransactionID string          `gorm:"size:128"`
	CreatedAt     time.Time
}

// TableName overrides GORM's default naming convention.
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(p *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:            p.ID().Bytes(),
		OrderID:       p.OrderID().Bytes(),
		Amount:        p.Amount().Amount(),
		Currency:      p.Amount().Currency(),
		Method:        p.Method().String(),
		Status:        p.Status().String(),
		TransactionID: p.TransactionID(),
		CreatedAt:     p.CreatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	amount, err := kernel.NewMoney(dto.Amount, dto.Currency)
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		amount,
		payment.Method(dto.Method),
		payment.Status(dto.Status),
		dto.TransactionID,
		dto.CreatedAt,
	)
}
