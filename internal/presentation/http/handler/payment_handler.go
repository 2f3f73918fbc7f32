package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kipsang/dukapos-api/internal/application/service"
	"github.com/kipsang/dukapos-api/internal/domain/enum"
	"github.com/kipsang/dukapos-api/internal/domain/repository"
	"github.com/kipsang/dukapos-api/internal/presentation/http/dto/request"
	"github.com/kipsang/dukapos-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// List handles listing payments with filtering
func (h *PaymentHandler) List(c *gin.Context) {
	params := &repository.PaymentFilterParams{
		Pagination: parsePagination(c),
		PayableID:  parseUUIDQuery(c, "payable_id"),
		StartDate:  parseDateQuery(c, "start_date"),
		EndDate:    parseDateQuery(c, "end_date"),
	}

	if kindStr := c.Query("kind"); kindStr != "" {
		kind := enum.OrderKind(kindStr)
		if !kind.Valid() {
			response.BadRequest(c, "kind must be purchase or customer")
			return
		}
		params.PayableKind = &kind
	}
	if dirStr := c.Query("direction"); dirStr != "" {
		direction := enum.PaymentDirection(dirStr)
		if !direction.Valid() {
			response.BadRequest(c, "direction must be inbound or outbound")
			return
		}
		params.Direction = &direction
	}
	if methodStr := c.Query("method"); methodStr != "" {
		method := enum.PaymentMethod(methodStr)
		if !method.Valid() {
			response.BadRequest(c, "Unknown payment method")
			return
		}
		params.Method = &method
	}
	if depositedStr := c.Query("deposited"); depositedStr != "" {
		deposited, err := strconv.ParseBool(depositedStr)
		if err != nil {
			response.BadRequest(c, "deposited must be true or false")
			return
		}
		params.Deposited = &deposited
	}

	result, err := h.paymentService.ListPayments(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Get handles retrieving a single payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment retrieved successfully", payment)
}

// Create handles payment creation, direct or consolidated
func (h *PaymentHandler) Create(c *gin.Context) {
	var req request.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if len(req.Allocations) == 0 && req.PayableID == nil {
		response.BadRequest(c, "payable_id is required for a direct payment")
		return
	}

	input := &service.CreatePaymentInput{
		Method:      enum.PaymentMethod(req.Method),
		Amount:      req.Amount,
		BankName:    req.BankName,
		AccountNo:   req.AccountNo,
		ReferenceNo: req.ReferenceNo,
	}
	if req.PayableID != nil {
		input.PayableID = *req.PayableID
	}
	if req.DateReceived != nil {
		input.DateReceived = *req.DateReceived
	}
	if req.Status != nil {
		status := enum.PaymentStatus(*req.Status)
		input.Status = &status
	}
	for _, alloc := range req.Allocations {
		input.Allocations = append(input.Allocations, service.AllocationInput{
			OrderID: alloc.OrderID,
			Amount:  alloc.Amount,
		})
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	// A missing reference on a non-cash method never blocks the recording;
	// it is surfaced back to the caller as a warning.
	if payment.Method.RequiresReference() && payment.ReferenceNo == "" {
		response.Created(c, "Payment recorded successfully", gin.H{
			"payment":  payment,
			"warnings": []string{payment.Method.MissingReferenceWarning()},
		})
		return
	}
	response.Created(c, "Payment recorded successfully", payment)
}

// UpdateStatus handles advancing a payment's settlement status
func (h *PaymentHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req request.UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	payment, err := h.paymentService.UpdatePaymentStatus(c.Request.Context(), id, enum.PaymentStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment status updated successfully", payment)
}

// Deposit handles marking a payment as banked
func (h *PaymentHandler) Deposit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	var req request.DepositPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	depositDate := time.Now()
	if req.DepositDate != nil {
		depositDate = *req.DepositDate
	}

	payment, err := h.paymentService.MarkDeposited(c.Request.Context(), id, depositDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment marked as deposited", payment)
}

// Delete handles removing a payment
func (h *PaymentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "Invalid payment ID")
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
