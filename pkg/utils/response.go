package utils

import (
	"net/http"

	"dorm-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
)

// SuccessResponse sends a standard success JSON response
func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// PaginatedResponse sends a success response with list data and paging meta
func PaginatedResponse(c *gin.Context, data interface{}, meta PageMeta) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

// ErrorResponse sends a standard error JSON response
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}

// FailureResponse maps a service error to an HTTP response, exposing the
// machine-readable code for business failures.
func FailureResponse(c *gin.Context, err error) {
	if ae, ok := apperr.As(err); ok {
		c.JSON(ae.Status, gin.H{
			"success": false,
			"code":    ae.Code,
			"error":   ae.Message,
		})
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, "internal server error")
}

// MessageResponse sends a simple message response
func MessageResponse(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}
