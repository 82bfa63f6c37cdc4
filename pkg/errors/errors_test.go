package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinelByType(t *testing.T) {
	err := fmt.Errorf("start: %w", New(ErrorTypeNoActiveDocument, "nothing focused"))

	assert.True(t, stderrors.Is(err, ErrNoActiveDocument))
	assert.False(t, stderrors.Is(err, ErrUpdateCheck))
}

func TestErrorMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := &Error{Type: ErrorTypeNetwork, Message: "fetch release", Err: cause}

	assert.Equal(t, "network error: fetch release: connection refused", err.Error())
	assert.Equal(t, cause, stderrors.Unwrap(err))

	withCode := &Error{Type: ErrorTypeServerError, Code: 503}
	assert.Equal(t, "server_error error (code 503)", withCode.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrorTypeNetwork))
	assert.True(t, IsRetryable(ErrorTypeServerError))
	assert.False(t, IsRetryable(ErrorTypeParsing))
	assert.False(t, IsRetryable(ErrorTypeNoActiveDocument))
}

func TestTypeForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{0, ErrorTypeNetwork},
		{429, ErrorTypeRateLimit},
		{404, ErrorTypeNotFound},
		{502, ErrorTypeServerError},
		{400, ErrorTypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TypeForStatus(tt.status), "status %d", tt.status)
		assert.Equal(t, tt.status == 0 || tt.status == 429 || tt.status >= 500, IsRetryableStatusCode(tt.status))
	}
}
