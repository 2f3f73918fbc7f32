package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations.
// ListForOrder returns every payment settling part of the order: direct
// payments plus consolidated payments carrying an allocation for it.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
	ListForOrder(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination  *pagination.PaginationParams
	PayableID   *uuid.UUID
	PayableKind *enum.OrderKind
	Direction   *enum.PaymentDirection
	Method      *enum.PaymentMethod
	Deposited   *bool
	StartDate   *time.Time
	EndDate     *time.Time
}
