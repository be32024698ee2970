package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/config"
)

const testSecret = "test-signing-secret"

func testAuthService() AuthService {
	return NewAuthService(&config.AuthConfig{
		Secret: testSecret,
		Issuer: "waypoint-accounts",
	}, zap.NewNop())
}

func mintToken(t *testing.T, secret, issuer, subject string, expiry time.Duration) string {
	t.Helper()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
		Email: "student@example.com",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestValidateToken_Valid(t *testing.T) {
	svc := testAuthService()
	userID := uuid.New().String()
	token := mintToken(t, testSecret, "waypoint-accounts", userID, time.Hour)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "student@example.com", claims.Email)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := testAuthService()
	token := mintToken(t, "some-other-secret", "waypoint-accounts", uuid.New().String(), time.Hour)

	_, err := svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := testAuthService()
	token := mintToken(t, testSecret, "waypoint-accounts", uuid.New().String(), -time.Minute)

	_, err := svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	svc := testAuthService()
	token := mintToken(t, testSecret, "someone-else", uuid.New().String(), time.Hour)

	_, err := svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_MissingSubject(t *testing.T) {
	svc := testAuthService()
	token := mintToken(t, testSecret, "waypoint-accounts", "", time.Hour)

	_, err := svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestValidateRequest_BearerHeader(t *testing.T) {
	svc := testAuthService()
	userID := uuid.New().String()
	token := mintToken(t, testSecret, "waypoint-accounts", userID, time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	claims, raw, err := svc.ValidateRequest(r)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, token, raw)
}

func TestValidateRequest_Cookie(t *testing.T) {
	svc := testAuthService()
	token := mintToken(t, testSecret, "waypoint-accounts", uuid.New().String(), time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.AddCookie(&http.Cookie{Name: "waypoint_jwt", Value: token})

	_, _, err := svc.ValidateRequest(r)
	assert.NoError(t, err)
}

func TestValidateRequest_MissingHeader(t *testing.T) {
	svc := testAuthService()

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	_, _, err := svc.ValidateRequest(r)
	assert.ErrorIs(t, err, ErrMissingAuthorization)
}

func TestValidateRequest_MalformedHeader(t *testing.T) {
	svc := testAuthService()

	r := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	r.Header.Set("Authorization", "Basic abc123")
	_, _, err := svc.ValidateRequest(r)
	assert.ErrorIs(t, err, ErrInvalidAuthFormat)
}
