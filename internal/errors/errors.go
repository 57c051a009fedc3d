package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized = "UNAUTHORIZED"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Error kinds. Every domain error wraps exactly one of these so the access
// boundary can classify it with errors.Is.
var (
	ErrValidation     = stderrors.New("validation error")
	ErrDuplicate      = stderrors.New("duplicate")
	ErrNotFound       = stderrors.New("not found")
	ErrAuthentication = stderrors.New("authentication failed")
	ErrUnavailable    = stderrors.New("service unavailable")
)

// DomainError is an error with a human-readable message and a kind.
type DomainError struct {
	kind    error
	message string
}

func (e *DomainError) Error() string {
	return e.message
}

func (e *DomainError) Unwrap() error {
	return e.kind
}

// New creates a domain error of the given kind.
func New(kind error, message string) *DomainError {
	return &DomainError{kind: kind, message: message}
}

// Validation creates a validation error.
func Validation(message string) *DomainError { return New(ErrValidation, message) }

// Duplicate creates a unique-constraint error.
func Duplicate(message string) *DomainError { return New(ErrDuplicate, message) }

// Missing creates a not-found error.
func Missing(message string) *DomainError { return New(ErrNotFound, message) }

// Authentication creates an authentication error.
func Authentication(message string) *DomainError { return New(ErrAuthentication, message) }

// Unavailable creates an error for a collaborator that is not configured.
func Unavailable(message string) *DomainError { return New(ErrUnavailable, message) }

// APIError represents a standardized API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Respond translates err into a status code and error body. Errors outside
// the taxonomy are logged and answered with an opaque 500.
func Respond(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case stderrors.Is(err, ErrValidation):
		BadRequest(c, err.Error())
	case stderrors.Is(err, ErrDuplicate):
		Conflict(c, err.Error())
	case stderrors.Is(err, ErrNotFound):
		NotFound(c, err.Error())
	case stderrors.Is(err, ErrAuthentication):
		Unauthorized(c, err.Error())
	case stderrors.Is(err, ErrUnavailable):
		ServiceUnavailable(c, err.Error())
	default:
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("unexpected error", slog.String("error", err.Error()))
		InternalError(c, "")
	}
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, NewAPIError(ErrCodeUnauthorized, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewAPIError(ErrCodeConflict, message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}
