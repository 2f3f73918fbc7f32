package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kipsang/dukapos-api/internal/domain/entity"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/pkg/apperror"
	"github.com/kipsang/dukapos-api/pkg/money"
	"github.com/kipsang/dukapos-api/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	Name         string
	SKU          string
	Quantity     int
	BuyingPrice  float64
	SellingPrice float64
	Notes        *string
}

// CreateProduct creates a new product. A blank SKU is generated from the
// name.
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	var fields []apperror.FieldError
	if input.Name == "" {
		fields = append(fields, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if input.Quantity < 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "must be zero or positive"})
	}
	if input.BuyingPrice < 0 {
		fields = append(fields, apperror.FieldError{Field: "buying_price", Message: "must be zero or positive"})
	}
	if input.SellingPrice < 0 {
		fields = append(fields, apperror.FieldError{Field: "selling_price", Message: "must be zero or positive"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	sku := input.SKU
	if sku == "" {
		prefix := strings.ToUpper(strings.ReplaceAll(input.Name, " ", ""))
		if len(prefix) > 4 {
			prefix = prefix[:4]
		}
		sku = fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:6])
	}

	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError(fmt.Sprintf("A product with SKU %s already exists", sku))
	}

	product := &entity.Product{
		Name:         input.Name,
		SKU:          sku,
		Quantity:     input.Quantity,
		BuyingPrice:  money.ToCents(input.BuyingPrice),
		SellingPrice: money.ToCents(input.SellingPrice),
		Notes:        input.Notes,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.SKU != "" && input.SKU != product.SKU {
		existing, err := s.productRepo.GetBySKU(ctx, input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("A product with SKU %s already exists", input.SKU))
		}
		product.SKU = input.SKU
	}
	if input.Quantity >= 0 {
		product.Quantity = input.Quantity
	}
	if input.BuyingPrice >= 0 {
		product.BuyingPrice = money.ToCents(input.BuyingPrice)
	}
	if input.SellingPrice >= 0 {
		product.SellingPrice = money.ToCents(input.SellingPrice)
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}
