package handler

import (
	"net/http"
	"strconv"

	"dorm-backend/internal/models"
	"dorm-backend/internal/service"
	"dorm-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService *service.StudentService
	paging         utils.PageOptions
}

func NewStudentHandler(studentService *service.StudentService, paging utils.PageOptions) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		paging:         paging,
	}
}

type StudentRequest struct {
	Code           string `json:"code" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone"`
	EnrollmentYear int    `json:"enrollment_year" binding:"required,min=1990"`
}

// List retrieves a page of students
func (h *StudentHandler) List(c *gin.Context) {
	params := utils.ParsePage(c, h.paging)
	students, total, err := h.studentService.List(params.Offset(), params.Limit)
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.PaginatedResponse(c, students, utils.BuildMeta(total, params))
}

// Get retrieves a student by ID
func (h *StudentHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	student, err := h.studentService.GetByID(uint(id))
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, student)
}

// Create creates a new student (admin only)
func (h *StudentHandler) Create(c *gin.Context) {
	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	student, err := h.studentService.Create(&models.Student{
		Code:           req.Code,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		EnrollmentYear: req.EnrollmentYear,
	})
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, student)
}

// Update updates directory fields of a student (admin only)
func (h *StudentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid student ID")
		return
	}

	var req StudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	student, err := h.studentService.Update(&models.Student{
		ID:             uint(id),
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		EnrollmentYear: req.EnrollmentYear,
	})
	if err != nil {
		utils.FailureResponse(c, err)
		return
	}
	utils.SuccessResponse(c, student)
}
