package handler

import (
	"net/http"
	"strconv"

	"dorm-backend/internal/models"
	"dorm-backend/internal/service"
	"dorm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type RoomHandler struct {
	roomService *service.RoomService
	paging      utils.PageOptions
}

func NewRoomHandler(roomService *service.RoomService, paging utils.PageOptions) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
		paging:      paging,
	}
}

type RoomRequest struct {
	Name            string         `json:"name" binding:"required"`
	Floor           int            `json:"floor" binding:"required,min=1"`
	Description     string         `json:"description"`
	RoomBlockID     *uint          `json:"room_block_id"`
	RoomTypeID      *uint          `json:"room_type_id"`
	Price           int64          `json:"price" binding:"required,min=0"`
	MaximumCapacity int            `json:"maximum_capacity" binding:"required,min=1"`
	Devices         datatypes.JSON `json:"devices"`
	Images          datatypes.JSON `json:"images"`
}

func (r *RoomRequest) toModel() *models.Room {
	return &models.Room{
		Name:            r.Name,
		Floor:           r.Floor,
		Description:     r.Description,
		RoomBlockID:     r.RoomBlockID,
		RoomTypeID:      r.RoomTypeID,
		Price:           r.Price,
		MaximumCapacity: r.MaximumCapacity,
		Devices:         r.Devices,
		Images:          r.Images,
	}
}

// List retrieves a page of rooms
func (h *RoomHandler) List(c *gin.Context) {
	params := utils.ParsePage(c, h.paging)
	rooms, total, err := h.roomService.List(params.Offset(), params.Limit)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.PaginatedResponse(c, rooms, utils.BuildMeta(total, params))
}

// Get retrieves a specific room by ID
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetByID(uint(id))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, room)
}

// Create creates a new room (admin only)
func (h *RoomHandler) Create(c *gin.Context) {
	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	userID, _ := c.Get("userID")
	room, err := h.roomService.Create(req.toModel(), userID.(uint))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, room)
}

// Update updates an existing room (admin only)
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	var req RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	room := req.toModel()
	room.ID = uint(id)

	userID, _ := c.Get("userID")
	updated, err := h.roomService.Update(room, userID.(uint))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, updated)
}

// Delete soft deletes a room (admin only)
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid room ID")
		return
	}

	userID, _ := c.Get("userID")
	if err := h.roomService.Delete(uint(id), userID.(uint)); err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.MessageResponse(c, "Room deleted successfully")
}

// ListBlocks retrieves all room blocks
func (h *RoomHandler) ListBlocks(c *gin.Context) {
	blocks, err := h.roomService.ListBlocks()
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, blocks)
}

// CreateBlock creates a room block (admin only)
func (h *RoomHandler) CreateBlock(c *gin.Context) {
	var block models.RoomBlock
	if err := c.ShouldBindJSON(&block); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.roomService.CreateBlock(&block); err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, block)
}

// ListTypes retrieves all room types
func (h *RoomHandler) ListTypes(c *gin.Context) {
	types, err := h.roomService.ListTypes()
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, types)
}

// CreateType creates a room type (admin only)
func (h *RoomHandler) CreateType(c *gin.Context) {
	var roomType models.RoomType
	if err := c.ShouldBindJSON(&roomType); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := h.roomService.CreateType(&roomType); err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, roomType)
}
