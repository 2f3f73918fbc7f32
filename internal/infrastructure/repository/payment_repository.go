package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	domainRepo "github.com/kipsang/dukapos-api/internal/domain/repository"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("payment_id = ?", id).Delete(&entity.PaymentAllocation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Payment{}, "id = ?", id).Error
	})
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Payment{})

	if params.PayableID != nil {
		query = query.Where("payable_id = ?", *params.PayableID)
	}

	if params.PayableKind != nil {
		query = query.Where("payable_kind = ?", *params.PayableKind)
	}

	if params.Direction != nil {
		query = query.Where("direction = ?", *params.Direction)
	}

	if params.Method != nil {
		query = query.Where("method = ?", *params.Method)
	}

	if params.Deposited != nil {
		query = query.Where("deposited = ?", *params.Deposited)
	}

	if params.StartDate != nil {
		query = query.Where("date_received >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("date_received <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Allocations").
		Order("date_received DESC").
		Find(&payments).Error

	return payments, total, err
}

// ListForOrder returns direct payments for the order plus consolidated
// payments carrying an allocation for it.
func (r *paymentRepository) ListForOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	allocated := r.db.Model(&entity.PaymentAllocation{}).
		Select("payment_id").
		Where("order_id = ?", orderID)
	err := r.db.WithContext(ctx).
		Preload("Allocations").
		Where("(payable_id = ? AND is_consolidated = false) OR id IN (?)", orderID, allocated).
		Order("date_received ASC").
		Find(&payments).Error
	return payments, err
}
