package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	domainRepo "github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/pkg/apperror"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Adjustments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *orderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Adjustments").
		First(&order, "order_no = ?", orderNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

// Update persists the full order graph guarded by an optimistic version
// check. A write against a version that already moved on fails with
// apperror.ErrConflict so two concurrent mutations of the same order cannot
// both succeed.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := order.Version
		result := tx.Model(&entity.Order{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":         order.Status,
				"expected_date":  order.ExpectedDate,
				"sub_total":      order.SubTotal,
				"tax":            order.Tax,
				"total":          order.Total,
				"tax_percentage": order.TaxPercentage,
				"notes":          order.Notes,
				"version":        currentVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.ErrConflict
		}
		order.Version = currentVersion + 1

		for i := range order.Items {
			if err := tx.Save(&order.Items[i]).Error; err != nil {
				return err
			}
		}

		// Adjustments are replaced wholesale: the set is small and only
		// the line conversion methods ever change it.
		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&entity.OrderAdjustment{}).Error; err != nil {
			return err
		}
		for i := range order.Adjustments {
			order.Adjustments[i].OrderID = order.ID
			if err := tx.Create(&order.Adjustments[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceLineItems swaps the order's line items while the order is still a
// draft, then persists the recomputed totals.
func (r *orderRepository) ReplaceLineItems(ctx context.Context, order *entity.Order, items []entity.OrderLineItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", order.ID).Delete(&entity.OrderLineItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = items

		currentVersion := order.Version
		result := tx.Model(&entity.Order{}).
			Where("id = ? AND version = ?", order.ID, currentVersion).
			Updates(map[string]interface{}{
				"sub_total": order.SubTotal,
				"tax":       order.Tax,
				"total":     order.Total,
				"version":   currentVersion + 1,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.ErrConflict
		}
		order.Version = currentVersion + 1
		return nil
	})
}

// Delete removes the order with its lines and adjustments. Only the checkout
// rollback uses it; orders are otherwise cancelled, never deleted.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("order_id = ?", id).Delete(&entity.OrderLineItem{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("order_id = ?", id).Delete(&entity.OrderAdjustment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Order{}, "id = ?", id).Error
	})
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Order{})

	if params.Kind != nil {
		query = query.Where("kind = ?", *params.Kind)
	}

	if params.Search != "" {
		query = query.Where("order_no ILIKE ?", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CounterpartyID != nil {
		query = query.Where("counterparty_id = ?", *params.CounterpartyID)
	}

	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder != "" && (params.SortOrder == "ASC" || params.SortOrder == "asc") {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(sortBy + " " + sortOrder).
		Find(&orders).Error

	return orders, total, err
}
