package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the API error envelope
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeError(c *gin.Context, code, message string, status int, details map[string]interface{}) {
	c.JSON(status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Status:  status,
			Details: details,
		},
	})
}

func badRequest(c *gin.Context, message string) {
	writeError(c, "BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func notFound(c *gin.Context, message string) {
	writeError(c, "NOT_FOUND", message, http.StatusNotFound, nil)
}

func internalError(c *gin.Context, message string) {
	writeError(c, "INTERNAL_ERROR", message, http.StatusInternalServerError, nil)
}

func validationError(c *gin.Context, message string, details map[string]interface{}) {
	writeError(c, "VALIDATION_ERROR", message, http.StatusBadRequest, details)
}
