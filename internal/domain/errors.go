package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
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

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request",
		StatusCode: 400,
	}

	ErrUnauthorized = &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Invalid or missing access token",
		StatusCode: 401,
	}

	ErrForbidden = &AppError{
		Code:       "FORBIDDEN",
		Message:    "This operation requires a supervisor or admin role",
		StatusCode: 403,
	}

	ErrUserNotFound = &AppError{
		Code:       "USER_NOT_FOUND",
		Message:    "User not found",
		StatusCode: 404,
	}

	ErrCheckInNotFound = &AppError{
		Code:       "CHECKIN_NOT_FOUND",
		Message:    "Check-in not found",
		StatusCode: 404,
	}

	ErrMissingPhoto = &AppError{
		Code:       "MISSING_PHOTO",
		Message:    "Check-in has no photo to validate",
		StatusCode: 422,
	}

	ErrValidationNotFound = &AppError{
		Code:       "VALIDATION_NOT_FOUND",
		Message:    "Check-in has not been validated yet",
		StatusCode: 404,
	}

	ErrValidationFailed = &AppError{
		Code:       "VALIDATION_FAILED",
		Message:    "Request validation failed",
		StatusCode: 422,
	}

	ErrInvalidImageRef = &AppError{
		Code:       "INVALID_IMAGE_REF",
		Message:    "Photo reference is malformed or inaccessible",
		StatusCode: 422,
	}
)
