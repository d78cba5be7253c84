package handler

import (
	"net/http"
	"strconv"

	"dorm-backend/internal/service"
	"dorm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	billingService *service.BillingService
	paging         utils.PageOptions
}

func NewPaymentHandler(billingService *service.BillingService, paging utils.PageOptions) *PaymentHandler {
	return &PaymentHandler{
		billingService: billingService,
		paging:         paging,
	}
}

type ApplyPaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=CASH BANK GATEWAY"`
	Amount int64  `json:"amount" binding:"required,min=1"`
}

// GatewayCallbackRequest mirrors the parsed payload delivered by the
// payment gateway. OrderInfo carries the student code.
type GatewayCallbackRequest struct {
	OrderInfo  string `json:"orderInfo" binding:"required"`
	ResultCode int    `json:"resultCode"`
	Amount     int64  `json:"amount"`
}

// Generate triggers an on-demand monthly billing run (admin only)
func (h *PaymentHandler) Generate(c *gin.Context) {
	userID, _ := c.Get("userID")
	adminID := userID.(uint)
	result, err := h.billingService.GenerateMonthlyPayments(&adminID)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, result)
}

// List retrieves a page of payments
func (h *PaymentHandler) List(c *gin.Context) {
	params := utils.ParsePage(c, h.paging)
	payments, total, err := h.billingService.List(params.Offset(), params.Limit)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.PaginatedResponse(c, payments, utils.BuildMeta(total, params))
}

// Get retrieves one payment
func (h *PaymentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid payment ID")
		return
	}
	payment, err := h.billingService.GetByID(uint(id))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, payment)
}

// ListByStudent retrieves a student's payments, oldest first
func (h *PaymentHandler) ListByStudent(c *gin.Context) {
	code := c.Param("code")
	payments, err := h.billingService.ListByStudentCode(code)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, payments)
}

// Apply records a manual settlement against a payment (admin only)
func (h *PaymentHandler) Apply(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid payment ID")
		return
	}
	var req ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")
	adminID := userID.(uint)
	payment, err := h.billingService.ApplyPayment(uint(id), req.Method, req.Amount, &adminID)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, payment)
}

// Callback receives the gateway webhook. Always answers 200 so the
// gateway does not retry: failed result codes and unknown students are
// deliberate no-ops.
func (h *PaymentHandler) Callback(c *gin.Context) {
	var req GatewayCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid callback payload")
		return
	}

	if err := h.billingService.ApplyExternalCallback(req.OrderInfo, req.ResultCode, req.Amount); err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.MessageResponse(c, "callback processed")
}
