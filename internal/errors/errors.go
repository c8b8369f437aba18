// Package errors renders the JSON error envelope returned by every endpoint.
package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInvalidSuggestion  = "INVALID_SUGGESTION"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every non-2xx response.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

type kind struct {
	status   int
	code     string
	fallback string
}

var (
	unauthorized  = kind{http.StatusUnauthorized, ErrCodeUnauthorized, "Unauthorized"}
	forbidden     = kind{http.StatusForbidden, ErrCodeForbidden, "Access denied"}
	notFound      = kind{http.StatusNotFound, ErrCodeNotFound, "Resource not found"}
	badRequest    = kind{http.StatusBadRequest, ErrCodeInvalidInput, "Invalid request"}
	alreadyExists = kind{http.StatusConflict, ErrCodeAlreadyExists, "Resource already exists"}
	conflict      = kind{http.StatusConflict, ErrCodeConflict, "Resource conflict"}
	badGateway    = kind{http.StatusBadGateway, ErrCodeInvalidSuggestion, "Upstream service returned an invalid response"}
	internal      = kind{http.StatusInternalServerError, ErrCodeInternalError, "Internal server error"}
	unavailable   = kind{http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Service temporarily unavailable"}
)

// abort writes the envelope and stops the handler chain. An empty message
// falls back to the kind's default text.
func abort(c *gin.Context, k kind, message string, details interface{}) {
	if message == "" {
		message = k.fallback
	}
	c.AbortWithStatusJSON(k.status, &APIError{Code: k.code, Message: message, Details: details})
}

func Unauthorized(c *gin.Context, message string) { abort(c, unauthorized, message, nil) }

func Forbidden(c *gin.Context, message string) { abort(c, forbidden, message, nil) }

func NotFound(c *gin.Context, message string) { abort(c, notFound, message, nil) }

func BadRequest(c *gin.Context, message string) { abort(c, badRequest, message, nil) }

// BadRequestWithDetails carries validator output in details.
func BadRequestWithDetails(c *gin.Context, message string, details interface{}) {
	abort(c, badRequest, message, details)
}

// AlreadyExists is a 409 for duplicate resources.
func AlreadyExists(c *gin.Context, message string) { abort(c, alreadyExists, message, nil) }

// Conflict is a 409 for requests the current state does not allow.
func Conflict(c *gin.Context, message string) { abort(c, conflict, message, nil) }

// BadGateway reports an upstream answer that could not be used.
func BadGateway(c *gin.Context, message string) { abort(c, badGateway, message, nil) }

func InternalError(c *gin.Context, message string) { abort(c, internal, message, nil) }

func ServiceUnavailable(c *gin.Context, message string) { abort(c, unavailable, message, nil) }
