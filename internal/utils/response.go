package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Error codes carried in ErrorBody.Code.
const (
	CodeValidationError     = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeInactive            = "INACTIVE"
	CodeInvalidTime         = "INVALID_TIME"
	CodeAppointmentConflict = "APPOINTMENT_CONFLICT"
	CodeDuplicateField      = "DUPLICATE_FIELD"
	CodePasswordMismatch    = "PASSWORD_MISMATCH"
	CodeUnderage            = "UNDERAGE"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeInternalError       = "INTERNAL_ERROR"
)

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Success   bool        `json:"success"`
	Status    int         `json:"status"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, ResponseData{
		Success:   true,
		Status:    http.StatusOK,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, ResponseData{
		Success:   true,
		Status:    http.StatusCreated,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, body ErrorBody) {
	c.JSON(statusCode, ResponseData{
		Success:   false,
		Status:    statusCode,
		Message:   body.Message,
		Timestamp: time.Now().UTC(),
		Error:     &body,
	})
}

// BadRequest sends a 400 Bad Request validation error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, ErrorBody{Code: CodeValidationError, Message: errorMessage})
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, ErrorBody{Code: CodeUnauthorized, Message: errorMessage})
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, errorMessage string) {
	Error(c, http.StatusForbidden, ErrorBody{Code: CodeForbidden, Message: errorMessage})
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, errorMessage string) {
	Error(c, http.StatusInternalServerError, ErrorBody{Code: CodeInternalError, Message: errorMessage})
}
