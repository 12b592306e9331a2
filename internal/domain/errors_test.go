package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	t.Run("without wrapped error", func(t *testing.T) {
		assert.Equal(t, "Check-in not found", ErrCheckInNotFound.Error())
	})

	t.Run("with wrapped error", func(t *testing.T) {
		err := ErrBadRequest.WithError(errors.New("invalid check-in id"))
		assert.Equal(t, "Invalid request: invalid check-in id", err.Error())
	})
}

func TestAppError_WithError(t *testing.T) {
	inner := errors.New("boom")
	err := ErrInternal.WithError(inner)

	// The original sentinel is untouched
	assert.Nil(t, ErrInternal.Err)

	assert.Equal(t, ErrInternal.Code, err.Code)
	assert.Equal(t, ErrInternal.StatusCode, err.StatusCode)
	assert.ErrorIs(t, err, inner)
}

func TestAppError_StatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{ErrInternal, 500},
		{ErrBadRequest, 400},
		{ErrUnauthorized, 401},
		{ErrForbidden, 403},
		{ErrUserNotFound, 404},
		{ErrCheckInNotFound, 404},
		{ErrValidationNotFound, 404},
		{ErrMissingPhoto, 422},
		{ErrValidationFailed, 422},
		{ErrInvalidImageRef, 422},
	}

	for _, tt := range tests {
		t.Run(tt.err.Code, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
		})
	}
}

func TestRole_CanReview(t *testing.T) {
	assert.False(t, RoleEmployee.CanReview())
	assert.True(t, RoleSupervisor.CanReview())
	assert.True(t, RoleAdmin.CanReview())
	assert.True(t, RoleSuperAdmin.CanReview())
	assert.False(t, Role("unknown").CanReview())
}

func TestCheckIn_HasPhoto(t *testing.T) {
	assert.True(t, (&CheckIn{PhotoBucket: "b", PhotoPath: "p"}).HasPhoto())
	assert.False(t, (&CheckIn{PhotoBucket: "b"}).HasPhoto())
	assert.False(t, (&CheckIn{PhotoPath: "p"}).HasPhoto())
	assert.False(t, (&CheckIn{}).HasPhoto())
}

func TestValidationStatus_IsRejecting(t *testing.T) {
	assert.True(t, StatusRejected.IsRejecting())
	assert.False(t, StatusAutoApproved.IsRejecting())
	assert.False(t, StatusApproved.IsRejecting())
	assert.False(t, StatusNeedsReview.IsRejecting())
}
