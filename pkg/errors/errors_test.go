package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeInvalidInput, http.StatusBadRequest},
		{CodeValidationFail, http.StatusBadRequest},
		{CodeNotFound, http.StatusNotFound},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeTimeout, http.StatusGatewayTimeout},
		{CodeCancelled, 499},
		{CodeNoFeasibleSolution, http.StatusUnprocessableEntity},
		{CodeDatabaseError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus)
		})
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Database(cause, "save_run")

	assert.True(t, Is(err, CodeDatabaseError))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "save_run")

	wrapped := fmt.Errorf("外层: %w", err)
	assert.Equal(t, CodeDatabaseError, GetCode(wrapped))
	assert.Equal(t, CodeUnknown, GetCode(cause))
}

func TestFromContext(t *testing.T) {
	assert.Equal(t, CodeTimeout, FromContext(context.DeadlineExceeded).Code)
	assert.Equal(t, CodeCancelled, FromContext(context.Canceled).Code)
}

func TestEmptySnapshot(t *testing.T) {
	err := EmptySnapshot(0, 42)
	assert.Equal(t, CodeInvalidInput, err.Code)
	assert.Equal(t, 42, err.Fields["shifts"])
}

func TestValidationErrors(t *testing.T) {
	var ve ValidationErrors
	assert.False(t, ve.HasErrors())

	ve.Add("assignments[0].shift_id", "班次 9 不存在")
	ve.Add("assignments[1].nurse_id", "护士 3 不存在")
	assert.True(t, ve.HasErrors())

	appErr := ve.ToAppError()
	assert.Equal(t, CodeValidationFail, appErr.Code)
	assert.Len(t, appErr.Fields, 2)
	assert.Equal(t, "班次 9 不存在", appErr.Fields["assignments[0].shift_id"])
}
