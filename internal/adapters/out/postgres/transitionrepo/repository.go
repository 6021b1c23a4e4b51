package transitionrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/pgerrors"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// GormTransitionRepository implements ports.TransitionRepository using GORM.
type GormTransitionRepository struct {
	db *gorm.DB
}

// NewGormTransitionRepository creates a new GORM transition repository.
func NewGormTransitionRepository(db *gorm.DB) *GormTransitionRepository {
	return &GormTransitionRepository{db: db}
}

// Add saves a new workflow edge. A duplicate (from, to) pair surfaces as
// errs.ErrObjectAlreadyExists.
func (r *GormTransitionRepository) Add(ctx context.Context, t *status.Transition) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause(
				"transition", t.FromCode()+" -> "+t.ToCode(), err)
		}
		return pgerrors.Classify("transition insert", err)
	}

	return nil
}

// Get retrieves the edge for a status pair, allowed or not.
func (r *GormTransitionRepository) Get(
	ctx context.Context, fromCode string, toCode string,
) (*status.Transition, error) {
	if fromCode == "" {
		return nil, errs.NewValueIsRequiredError("fromCode")
	}
	if toCode == "" {
		return nil, errs.NewValueIsRequiredError("toCode")
	}

	var dto TransitionDTO
	err := r.db.WithContext(ctx).
		First(&dto, "from_status = ? AND to_status = ?", fromCode, toCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("transition", fromCode+" -> "+toCode)
		}
		return nil, pgerrors.Classify("transition select", err)
	}

	return toDomain(dto)
}

// GetAllFrom retrieves the allowed edges leaving the given status, ordered by
// display order.
func (r *GormTransitionRepository) GetAllFrom(
	ctx context.Context, fromCode string,
) ([]*status.Transition, error) {
	if fromCode == "" {
		return nil, errs.NewValueIsRequiredError("fromCode")
	}

	return r.list(r.db.WithContext(ctx).
		Where("from_status = ? AND is_allowed", fromCode).
		Order("display_order, to_status"))
}

// GetAll retrieves every edge ordered by source, then display order.
func (r *GormTransitionRepository) GetAll(ctx context.Context) ([]*status.Transition, error) {
	return r.list(r.db.WithContext(ctx).Order("from_status, display_order, to_status"))
}

func (r *GormTransitionRepository) list(tx *gorm.DB) ([]*status.Transition, error) {
	var dtos []TransitionDTO
	if err := tx.Find(&dtos).Error; err != nil {
		return nil, pgerrors.Classify("transition list", err)
	}

	transitions := make([]*status.Transition, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		transitions = append(transitions, t)
	}

	return transitions, nil
}
