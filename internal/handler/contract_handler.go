package handler

import (
	"net/http"
	"strconv"

	"dorm-backend/internal/service"
	"dorm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ContractHandler struct {
	contractService *service.ContractService
	paging          utils.PageOptions
}

func NewContractHandler(contractService *service.ContractService, paging utils.PageOptions) *ContractHandler {
	return &ContractHandler{
		contractService: contractService,
		paging:          paging,
	}
}

type AttachServiceRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
}

// Create registers a new PENDING contract
func (h *ContractHandler) Create(c *gin.Context) {
	var req service.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	contract, err := h.contractService.Create(req)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// List retrieves a page of contracts, reconciling expired ones first
func (h *ContractHandler) List(c *gin.Context) {
	params := utils.ParsePage(c, h.paging)
	contracts, total, err := h.contractService.List(params.Offset(), params.Limit)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.PaginatedResponse(c, contracts, utils.BuildMeta(total, params))
}

// Get retrieves one contract
func (h *ContractHandler) Get(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.GetByID(id)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// Confirm approves a PENDING contract (admin only)
func (h *ContractHandler) Confirm(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	userID, _ := c.Get("userID")
	contract, err := h.contractService.Confirm(id, userID.(uint))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// RequestCancel asks to cancel a confirmed contract
func (h *ContractHandler) RequestCancel(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.RequestCancel(id)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// UndoCancelRequest withdraws a cancellation request
func (h *ContractHandler) UndoCancelRequest(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.UndoCancelRequest(id)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// Cancel terminates an active contract (admin only)
func (h *ContractHandler) Cancel(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	userID, _ := c.Get("userID")
	contract, err := h.contractService.Cancel(id, userID.(uint))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// CheckIn stamps the move-in date
func (h *ContractHandler) CheckIn(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	contract, err := h.contractService.CheckIn(id)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// CheckOut releases the room and stamps the move-out date (admin only)
func (h *ContractHandler) CheckOut(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	userID, _ := c.Get("userID")
	contract, err := h.contractService.CheckOut(id, userID.(uint))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// Delete removes a contract that is still PENDING (admin only)
func (h *ContractHandler) Delete(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	if err := h.contractService.Remove(id); err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.MessageResponse(c, "Contract deleted successfully")
}

// AddService attaches a recurring service to a contract
func (h *ContractHandler) AddService(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	var req AttachServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	contract, err := h.contractService.AddService(id, req.ServiceID)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

// RemoveService detaches a service from a contract
func (h *ContractHandler) RemoveService(c *gin.Context) {
	id, ok := h.contractID(c)
	if !ok {
		return
	}
	serviceID, err := strconv.ParseUint(c.Param("serviceId"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}
	contract, err := h.contractService.RemoveService(id, uint(serviceID))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, contract)
}

func (h *ContractHandler) contractID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contract ID")
		return 0, false
	}
	return uint(id), true
}
