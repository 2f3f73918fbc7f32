package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

// ReconcileService derives what is still owed on an order from the payments
// recorded against it, directly or through consolidated shares.
type ReconcileService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

// NewReconcileService creates a new reconcile service
func NewReconcileService(orderRepo repository.OrderRepository, paymentRepo repository.PaymentRepository) *ReconcileService {
	return &ReconcileService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

// OrderBalance returns the order together with its settled and outstanding
// amounts.
func (s *ReconcileService) OrderBalance(ctx context.Context, orderID uuid.UUID) (*entity.Order, entity.Balance, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, entity.Balance{}, err
	}
	if order == nil {
		return nil, entity.Balance{}, apperror.NewNotFoundError("Order")
	}

	payments, err := s.paymentRepo.ListForOrder(ctx, orderID)
	if err != nil {
		return nil, entity.Balance{}, err
	}

	return order, entity.ComputeOutstanding(order, payments), nil
}

// OrderPayments lists every payment settling part of the order
func (s *ReconcileService) OrderPayments(ctx context.Context, orderID uuid.UUID) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.ListForOrder(ctx, orderID)
}
