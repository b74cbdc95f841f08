package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorCode is the closed set of machine-readable business error codes.
type ErrorCode string

const (
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeDuplicateEntry ErrorCode = "DUPLICATE_ENTRY"
	CodeAlreadyInState ErrorCode = "ALREADY_IN_STATE"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
)

// statusByCode maps every business code to its HTTP status. Built once here;
// an unknown code falls back to 500 in StatusOf.
var statusByCode = map[ErrorCode]int{
	CodeNotFound:       fiber.StatusNotFound,
	CodeDuplicateEntry: fiber.StatusConflict,
	CodeAlreadyInState: fiber.StatusConflict,
	CodeForbidden:      fiber.StatusForbidden,
	CodeValidation:     fiber.StatusBadRequest,
	CodeUnauthorized:   fiber.StatusUnauthorized,
	CodeInternal:       fiber.StatusInternalServerError,
}

// StatusOf returns the HTTP status for a business code.
func StatusOf(code ErrorCode) int {
	if s, ok := statusByCode[code]; ok {
		return s
	}
	return fiber.StatusInternalServerError
}

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors

// NewNotFoundError is used both when an entity is genuinely absent and when
// access to it is denied: diary visibility denials must be indistinguishable
// from missing diaries so that existence is not leaked.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewDuplicateError(message string) *AppError {
	return &AppError{
		Code:    CodeDuplicateEntry,
		Message: message,
	}
}

func NewAlreadyInStateError(message string) *AppError {
	return &AppError{
		Code:    CodeAlreadyInState,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes a standardized error response. The status is taken
// from the business code table for AppErrors; anything else becomes a 500.
func RespondWithError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*AppError); ok {
		response := ErrorResponse{
			Error: appErr.Message,
			Code:  string(appErr.Code),
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
		return c.Status(StatusOf(appErr.Code)).JSON(response)
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: err.Error(),
	})
}
