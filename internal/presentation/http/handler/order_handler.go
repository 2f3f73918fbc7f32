package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kipsang/dukapos-api/internal/application/service"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/internal/presentation/http/dto/request"
	"github.com/kipsang/dukapos-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService     *service.OrderService
	adjustmentSvc    *service.AdjustmentService
	reconcileService *service.ReconcileService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orderService *service.OrderService,
	adjustmentSvc *service.AdjustmentService,
	reconcileService *service.ReconcileService,
) *OrderHandler {
	return &OrderHandler{
		orderService:     orderService,
		adjustmentSvc:    adjustmentSvc,
		reconcileService: reconcileService,
	}
}

// List handles listing orders with filtering
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: parsePagination(c),
		Search:     c.Query("search"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		kind := enum.OrderKind(kindStr)
		if !kind.Valid() {
			response.BadRequest(c, "kind must be purchase or customer")
			return
		}
		params.Kind = &kind
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status, ok := enum.ParseOrderStatus(statusStr)
		if !ok {
			response.BadRequest(c, "Unknown order status")
			return
		}
		params.Status = &status
	}
	params.CounterpartyID = parseUUIDQuery(c, "counterparty_id")

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Get handles retrieving a single order
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order retrieved successfully", order)
}

// Create handles order creation
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateOrderInput{
		Kind:           enum.OrderKind(req.Kind),
		CounterpartyID: req.CounterpartyID,
		ExpectedDate:   req.ExpectedDate,
		TaxPercentage:  req.TaxPercentage,
		Notes:          req.Notes,
	}
	if req.OrderDate != nil {
		input.OrderDate = *req.OrderDate
	}
	for _, line := range req.Items {
		input.Items = append(input.Items, service.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order created successfully", order)
}

// Update handles editing a draft order
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateOrderInput{
		ExpectedDate:  req.ExpectedDate,
		TaxPercentage: req.TaxPercentage,
		Notes:         req.Notes,
	}
	if req.Items != nil {
		for _, line := range req.Items {
			input.Items = append(input.Items, service.OrderLineInput{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitCost:  line.UnitCost,
			})
		}
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order updated successfully", order)
}

// Submit handles moving a draft order to submitted
func (h *OrderHandler) Submit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.SubmitOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order submitted successfully", order)
}

// Fulfill handles marking a submitted order fulfilled
func (h *OrderHandler) Fulfill(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.FulfillOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	var lines []service.FulfillLineInput
	for _, line := range req.Lines {
		lines = append(lines, service.FulfillLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	order, err := h.orderService.FulfillOrder(c.Request.Context(), id, lines)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order fulfilled successfully", order)
}

// Cancel handles cancelling a draft or submitted order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.CancelOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order cancelled successfully", order)
}

// Transition handles an explicit status transition request
func (h *OrderHandler) Transition(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.TransitionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	target, valid := enum.ParseOrderStatus(req.Status)
	if !valid {
		response.BadRequest(c, "Unknown order status")
		return
	}

	var order interface{}
	var err error
	switch target {
	case enum.OrderStatusSubmitted:
		order, err = h.orderService.SubmitOrder(c.Request.Context(), id)
	case enum.OrderStatusFulfilled:
		order, err = h.orderService.FulfillOrder(c.Request.Context(), id, nil)
	case enum.OrderStatusCancelled:
		order, err = h.orderService.CancelOrder(c.Request.Context(), id)
	default:
		response.BadRequest(c, "Orders cannot move back to draft")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order status updated successfully", order)
}

// ConvertLineToCash handles converting a line item into a cash adjustment
func (h *OrderHandler) ConvertLineToCash(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.ConvertLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.adjustmentSvc.ConvertLineToCash(c.Request.Context(), id, req.ProductID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line converted to cash successfully", order)
}

// RevertLineToCash handles undoing a line-to-cash conversion
func (h *OrderHandler) RevertLineToCash(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.RevertLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	order, err := h.adjustmentSvc.RevertLineToCash(c.Request.Context(), id, req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line conversion reverted successfully", order)
}

// Balance handles the outstanding balance lookup for an order
func (h *OrderHandler) Balance(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, balance, err := h.reconcileService.OrderBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order balance retrieved successfully", gin.H{
		"order_id":     order.ID,
		"order_no":     order.OrderNo,
		"total":        order.GetTotalDecimal(),
		"balance":      balance,
		"retrieved_at": time.Now().UTC(),
	})
}

// Payments handles listing the payments settling an order
func (h *OrderHandler) Payments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	payments, err := h.reconcileService.OrderPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order payments retrieved successfully", payments)
}
