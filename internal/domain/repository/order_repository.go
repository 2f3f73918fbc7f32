package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations. Update
// carries an optimistic version check: a write against a stale version fails
// with apperror.ErrConflict and the caller must refetch.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	ReplaceLineItems(ctx context.Context, order *entity.Order, items []entity.OrderLineItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination     *pagination.PaginationParams
	Kind           *enum.OrderKind
	Search         string
	Status         *enum.OrderStatus
	CounterpartyID *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
	SortBy         string
	SortOrder      string
}
