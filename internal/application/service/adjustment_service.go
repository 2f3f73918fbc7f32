package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

// AdjustmentService converts order lines to cash and back. The order entity
// enforces the invariants; this layer loads, mutates, and persists under the
// optimistic version check, so two concurrent conversions of the same order
// cannot both land.
type AdjustmentService struct {
	orderRepo repository.OrderRepository
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(orderRepo repository.OrderRepository) *AdjustmentService {
	return &AdjustmentService{orderRepo: orderRepo}
}

// ConvertLineToCash voids the product's line on the order and records the
// offsetting cash adjustment.
func (s *AdjustmentService) ConvertLineToCash(ctx context.Context, orderID, productID uuid.UUID, reason string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := order.ConvertLineToCash(productID, reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// RevertLineToCash undoes a prior conversion, restoring the line and
// removing its adjustment.
func (s *AdjustmentService) RevertLineToCash(ctx context.Context, orderID, productID uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if err := order.RevertLineToCash(productID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
