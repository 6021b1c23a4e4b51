package paymentrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/pgerrors"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/payment"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// GormPaymentRepository implements ports.PaymentRepository using GORM.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GORM payment repository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Add saves a new payment record.
func (r *GormPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := fromDomain(p)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("paymentID", p.ID(), err)
		}
		return pgerrors.Classify("payment insert", err)
	}

	return nil
}

// GetAllForOrder retrieves every payment recorded for the order, newest first.
func (r *GormPaymentRepository) GetAllForOrder(
	ctx context.Context, orderID kernel.UUID,
) ([]*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, pgerrors.Classify("payment list", err)
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	return payments, nil
}

// TotalPaidForOrder sums the successful payments recorded for the order.
// A successful payment in a different currency is a data fault the core must
// not paper over, so it surfaces as errs.ErrCurrencyMismatch instead of being
// skipped or coerced.
func (r *GormPaymentRepository) TotalPaidForOrder(
	ctx context.Context, orderID kernel.UUID, currency string,
) (kernel.Money, error) {
	if err := orderID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	successful := []string{
		payment.StatusCaptured.String(),
		payment.StatusPartiallyRefunded.String(),
	}

	var foreign int64
	err := r.db.WithContext(ctx).Model(&PaymentDTO{}).
		Where("order_id = ? AND status IN ? AND currency <> ?", orderID.Bytes(), successful, currency).
		Count(&foreign).Error
	if err != nil {
		return kernel.Money{}, pgerrors.Classify("payment sum", err)
	}
	if foreign > 0 {
		return kernel.Money{}, errs.NewCurrencyMismatchError(currency, "recorded payments")
	}

	var total decimal.NullDecimal
	err = r.db.WithContext(ctx).Model(&PaymentDTO{}).
		Select("SUM(amount)").
		Where("order_id = ? AND status IN ? AND currency = ?", orderID.Bytes(), successful, currency).
		Scan(&total).Error
	if err != nil {
		return kernel.Money{}, pgerrors.Classify("payment sum", err)
	}

	if !total.Valid {
		return kernel.NewZeroMoney(currency)
	}
	return kernel.NewMoney(total.Decimal, currency)
}
