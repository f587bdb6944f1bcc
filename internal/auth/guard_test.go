package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuard(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	userID := uuid.New()
	token, err := svc.Issue(userID, "alice")
	require.NoError(t, err)

	expiredSvc := NewJWTService("test-secret", time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	expired, err := expiredSvc.Issue(userID, "alice")
	require.NoError(t, err)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer " + token, wantStatus: http.StatusOK},
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized, wantMessage: "Access Denied. No Token Provided."},
		{name: "scheme without token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: "Access Denied. No Token Provided."},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusForbidden, wantMessage: "Invalid Token."},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusForbidden, wantMessage: "Invalid Token."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.GET("/protected", func(c echo.Context) error {
				identity, ok := IdentityFromContext(c)
				if !ok {
					return c.NoContent(http.StatusInternalServerError)
				}
				return c.JSON(http.StatusOK, map[string]string{
					"id":       identity.UserID.String(),
					"username": identity.Username,
				})
			}, Guard(svc))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, userID.String(), body["id"])
				assert.Equal(t, "alice", body["username"])
				return
			}
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}
