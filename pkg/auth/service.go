package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/waypoint-hq/waypoint-engine/pkg/config"
)

// Common authentication errors.
var (
	ErrMissingAuthorization = errors.New("missing authorization")
	ErrInvalidAuthFormat    = errors.New("invalid authorization header format")
	ErrMissingSubject       = errors.New("missing user ID in token")
)

// AuthService defines the interface for authentication operations.
// This abstraction enables clean separation between HTTP handling
// and token validation, making both easier to test.
type AuthService interface {
	// ValidateRequest extracts and validates a JWT from the request.
	// It checks for the token in:
	//   1. Cookie named "waypoint_jwt" (browser clients)
	//   2. Authorization header with "Bearer" scheme (API clients)
	// Returns the validated claims, the raw token string, or an error.
	ValidateRequest(r *http.Request) (*Claims, string, error)

	// ValidateToken verifies a raw token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)
}

// authService implements AuthService using an HMAC shared secret.
type authService struct {
	secret []byte
	issuer string
	logger *zap.Logger
}

// NewAuthService creates a new AuthService with the given config and logger.
func NewAuthService(cfg *config.AuthConfig, logger *zap.Logger) AuthService {
	return &authService{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		logger: logger,
	}
}

// ValidateRequest extracts and validates a JWT from the request.
func (s *authService) ValidateRequest(r *http.Request) (*Claims, string, error) {
	var tokenString string
	var tokenSource string

	// Try cookie first (browser clients)
	if cookie, err := r.Cookie("waypoint_jwt"); err == nil {
		tokenString = cookie.Value
		tokenSource = "cookie"
	} else {
		// Fallback to Authorization header (API clients)
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.logger.Debug("No JWT found in request",
				zap.String("path", r.URL.Path),
				zap.String("method", r.Method))
			return nil, "", ErrMissingAuthorization
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.logger.Debug("Invalid Authorization header format",
				zap.String("path", r.URL.Path))
			return nil, "", ErrInvalidAuthFormat
		}
		tokenString = parts[1]
		tokenSource = "header"
	}

	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		s.logger.Debug("JWT validation failed",
			zap.Error(err),
			zap.String("path", r.URL.Path),
			zap.String("token_source", tokenSource))
		return nil, "", err
	}

	return claims, tokenString, nil
}

// ValidateToken verifies the signature, expiry, and issuer of a token.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// Ensure authService implements AuthService at compile time.
var _ AuthService = (*authService)(nil)
