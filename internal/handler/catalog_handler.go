package handler

import (
	"net/http"
	"strconv"

	"dorm-backend/internal/models"
	"dorm-backend/internal/service"
	"dorm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	catalogService *service.CatalogService
	paging         utils.PageOptions
}

func NewCatalogHandler(catalogService *service.CatalogService, paging utils.PageOptions) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		paging:         paging,
	}
}

type ServiceRequest struct {
	Name  string `json:"name" binding:"required"`
	Price int64  `json:"price" binding:"required,min=0"`
}

type ContractTypeRequest struct {
	Title    string `json:"title" binding:"required"`
	Duration int    `json:"duration" binding:"required,min=1"`
	Unit     string `json:"unit" binding:"required,oneof=YEAR MONTH DAY"`
}

// ListServices retrieves a page of catalog services
func (h *CatalogHandler) ListServices(c *gin.Context) {
	params := utils.ParsePage(c, h.paging)
	services, total, err := h.catalogService.ListServices(params.Offset(), params.Limit)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.PaginatedResponse(c, services, utils.BuildMeta(total, params))
}

// GetService retrieves one catalog service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}
	svc, err := h.catalogService.GetService(uint(id))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, svc)
}

// CreateService creates a catalog service (admin only)
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	svc, err := h.catalogService.CreateService(&models.Service{Name: req.Name, Price: req.Price})
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, svc)
}

// UpdateService updates a catalog service (admin only)
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	svc, err := h.catalogService.UpdateService(&models.Service{
		ID:    uint(id),
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, svc)
}

// DeleteService deactivates a catalog service (admin only)
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid service ID")
		return
	}
	if err := h.catalogService.DeleteService(uint(id)); err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.MessageResponse(c, "Service deleted successfully")
}

// ListContractTypes retrieves all contract types
func (h *CatalogHandler) ListContractTypes(c *gin.Context) {
	types, err := h.catalogService.ListContractTypes()
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, types)
}

// GetContractType retrieves one contract type
func (h *CatalogHandler) GetContractType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid contract type ID")
		return
	}
	ct, err := h.catalogService.GetContractType(uint(id))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, ct)
}

// CreateContractType creates a contract type (admin only)
func (h *CatalogHandler) CreateContractType(c *gin.Context) {
	var req ContractTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	ct, err := h.catalogService.CreateContractType(&models.ContractType{
		Title:    req.Title,
		Duration: req.Duration,
		Unit:     req.Unit,
	})
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, ct)
}
