package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		notFoundStatus int
		wantStatus     int
		wantCode       string
	}{
		{name: "validation", err: ErrValidation, wantStatus: http.StatusBadRequest, wantCode: "VALIDATION_FAILED"},
		{name: "wrapped duplicate", err: fmt.Errorf("create user: %w", ErrDuplicateUser), wantStatus: http.StatusBadRequest, wantCode: "USER_ALREADY_EXISTS"},
		{name: "not found on login", err: ErrUserNotFound, notFoundStatus: http.StatusBadRequest, wantStatus: http.StatusBadRequest, wantCode: "USER_NOT_FOUND"},
		{name: "not found on dashboard", err: ErrUserNotFound, notFoundStatus: http.StatusNotFound, wantStatus: http.StatusNotFound, wantCode: "USER_NOT_FOUND"},
		{name: "invalid credentials", err: ErrInvalidCredentials, wantStatus: http.StatusBadRequest, wantCode: "INVALID_CREDENTIALS"},
		{name: "unauthorized", err: ErrUnauthorized, wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED"},
		{name: "forbidden", err: ErrForbidden, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "unsupported media", err: ErrUnsupportedMedia, wantStatus: http.StatusUnsupportedMediaType, wantCode: "UNSUPPORTED_MEDIA_TYPE"},
		{name: "too large", err: ErrMediaTooLarge, wantStatus: http.StatusRequestEntityTooLarge, wantCode: "MEDIA_TOO_LARGE"},
		{name: "unclassified", err: fmt.Errorf("connection reset"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := tt.notFoundStatus
			if status == 0 {
				status = http.StatusNotFound
			}
			got := MapErrorToHTTP(tt.err, status)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.NotEmpty(t, got.Message)
		})
	}
}

func TestMapErrorToHTTP_HidesCause(t *testing.T) {
	got := MapErrorToHTTP(fmt.Errorf("dial tcp 10.0.0.1:3306: refused"), http.StatusNotFound)
	assert.NotContains(t, got.ToErrorResponse().Message, "10.0.0.1")
	assert.False(t, got.ToErrorResponse().Success)
}
