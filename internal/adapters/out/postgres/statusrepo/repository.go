package statusrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sparrow-trajon/order-processing-system/internal/adapters/out/postgres/pgerrors"
	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"
)

// GormStatusRepository implements ports.StatusRepository using GORM.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewGormStatusRepository creates a new GORM status repository.
func NewGormStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// Add saves a new status definition. A duplicate code surfaces as
// errs.ErrObjectAlreadyExists.
func (r *GormStatusRepository) Add(ctx context.Context, s *status.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return errs.NewObjectAlreadyExistsErrorWithCause("code", s.Code(), err)
		}
		return pgerrors.Classify("status insert", err)
	}

	return nil
}

// Update overwrites the definition with the same code.
func (r *GormStatusRepository) Update(ctx context.Context, s *status.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	result := r.db.WithContext(ctx).Model(&StatusDTO{}).
		Where("code = ?", dto.Code).
		Select("*").Omit("code", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return pgerrors.Classify("status update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("code", s.Code())
	}

	return nil
}

// GetByCode retrieves a status definition by code, active or not.
func (r *GormStatusRepository) GetByCode(ctx context.Context, code string) (*status.Status, error) {
	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}

	var dto StatusDTO
	if err := r.db.WithContext(ctx).First(&dto, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("status", code)
		}
		return nil, pgerrors.Classify("status select", err)
	}

	return toDomain(dto)
}

// GetAll retrieves every status definition ordered by display order.
func (r *GormStatusRepository) GetAll(ctx context.Context) ([]*status.Status, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

// GetAllActive retrieves the active status definitions ordered by display order.
func (r *GormStatusRepository) GetAllActive(ctx context.Context) ([]*status.Status, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("is_active"))
}

func (r *GormStatusRepository) list(_ context.Context, tx *gorm.DB) ([]*status.Status, error) {
	var dtos []StatusDTO
	if err := tx.Order("display_order, code").Find(&dtos).Error; err != nil {
		return nil, pgerrors.Classify("status list", err)
	}

	statuses := make([]*status.Status, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	return statuses, nil
}
