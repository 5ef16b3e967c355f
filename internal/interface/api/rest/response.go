package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hotel-users-api/internal/interface/api/rest/validator"
)

// Machine-readable codes returned in the envelope.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeInvalidID          = "INVALID_ID"
	CodeInvalidJSON        = "INVALID_JSON"
	CodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	CodeCPFAlreadyExists   = "CPF_ALREADY_EXISTS"
	CodeUserCreated        = "USER_CREATED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeAccountDeactivated = "ACCOUNT_DEACTIVATED"
	CodeLoginSuccess       = "LOGIN_SUCCESS"
	CodeTooManyAttempts    = "TOO_MANY_ATTEMPTS"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeUserAlreadyDeleted = "USER_ALREADY_DELETED"
	CodeUserAlreadyActive  = "USER_ALREADY_ACTIVE"
	CodeInternalError      = "INTERNAL_ERROR"
)

// Response is the envelope shared by every endpoint.
type Response struct {
	Success   bool                  `json:"success"`
	Message   string                `json:"message,omitempty"`
	Data      any                   `json:"data,omitempty"`
	Errors    validator.FieldErrors `json:"errors,omitempty"`
	Code      string                `json:"code,omitempty"`
	Token     string                `json:"token,omitempty"`
	Available *bool                 `json:"available,omitempty"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, Response{Success: false, Message: message, Code: code})
}

func respondValidation(c *gin.Context, errs validator.FieldErrors) {
	c.JSON(http.StatusBadRequest, Response{
		Success: false,
		Message: "invalid input data",
		Errors:  errs,
		Code:    CodeValidationError,
	})
}

func respondInvalidJSON(c *gin.Context) {
	respondError(c, http.StatusBadRequest, CodeInvalidJSON, "invalid json")
}

func respondInvalidID(c *gin.Context) {
	respondError(c, http.StatusBadRequest, CodeInvalidID, "id must be a valid UUID")
}

// respondInternal hides the cause from the client and logs it.
func respondInternal(c *gin.Context, logger *zap.Logger, op string, err error) {
	logger.Error(op+" error", zap.Error(err), zap.String("route", c.FullPath()))
	respondError(c, http.StatusInternalServerError, CodeInternalError, "internal server error")
}
