package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireAuth_SetsContext(t *testing.T) {
	svc := testAuthService()
	mw := NewMiddleware(svc, zap.NewNop())
	userID := uuid.New()
	token := mintToken(t, testSecret, "waypoint-accounts", userID.String(), time.Hour)

	var gotUser uuid.UUID
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		id, err := RequireUserUUIDFromContext(r.Context())
		require.NoError(t, err)
		gotUser = id
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID, gotUser)
}

func TestRequireAuth_RejectsMissingToken(t *testing.T) {
	mw := NewMiddleware(testAuthService(), zap.NewNop())

	called := false
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestGetUserUUIDFromContext_MalformedSubject(t *testing.T) {
	mw := NewMiddleware(testAuthService(), zap.NewNop())
	token := mintToken(t, testSecret, "waypoint-accounts", "not-a-uuid", time.Hour)

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetUserUUIDFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler(httptest.NewRecorder(), r)
}
