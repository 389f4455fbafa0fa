package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError represents a typed application error carrying the HTTP status it
// maps to. Aggregators return these for all expected failure conditions; only
// genuinely unexpected failures surface as Internal.
type AppError struct {
	Status  int
	Code    string
	Message string
	Errs    []string
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
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

// NewNotFoundMessageError builds a NotFound error with a custom message,
// for lookups that are not keyed by a numeric ID.
func NewNotFoundMessageError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusNotFound,
		Code:    "NOT_FOUND",
		Message: message,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusUnauthorized,
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusForbidden,
		Code:    "FORBIDDEN",
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Status:  fiber.StatusConflict,
		Code:    "CONFLICT",
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  fiber.StatusInternalServerError,
		Code:    "INTERNAL_ERROR",
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError writes the standard failure envelope. The HTTP status
// mirrors the statusCode field; raw (non-AppError) failures are reported as
// Internal without leaking storage details.
func RespondWithError(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		appErr = NewInternalError(err)
	}

	errs := appErr.Errs
	if errs == nil {
		errs = []string{}
	}

	return c.Status(appErr.Status).JSON(fiber.Map{
		"success":    false,
		"statusCode": appErr.Status,
		"message":    appErr.Message,
		"errors":     errs,
	})
}
