package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/kipsang/dukapos-api/internal/application/service"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/internal/presentation/http/dto/request"
	"github.com/kipsang/dukapos-api/internal/presentation/http/dto/response"
	"github.com/kipsang/dukapos-api/pkg/pricing"
)

// CheckoutHandler handles point-of-sale checkout requests
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles a complete point-of-sale sale
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	discountType := pricing.DiscountType(req.DiscountType)
	if req.DiscountType == "" {
		discountType = pricing.DiscountAmount
	}

	input := &service.CheckoutInput{
		CustomerID:    req.CustomerID,
		DiscountType:  discountType,
		DiscountValue: req.DiscountValue,
		VATPercentage: req.VATPercentage,
		Method:        enum.PaymentMethod(req.Method),
		Tendered:      req.Tendered,
		ReferenceNo:   req.ReferenceNo,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.CheckoutItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Checkout completed successfully", result)
}
