package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ga-dictionary/api-server-go/models"
	"github.com/ga-dictionary/api-server-go/utils"
)

// JWKS represents the JSON Web Key Set structure
type JWKS struct {
	Keys []JWK `json:"keys"`
}

// JWK represents a single JSON Web Key
type JWK struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	Alg string `json:"alg"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// PrincipalStore resolves a validated identity into a Principal. Injected so
// the middleware is testable without a live identity provider or database.
type PrincipalStore interface {
	ResolvePrincipal(ctx context.Context, claims *models.UserClaims) (*models.Principal, error)
}

// JWTAuthConfig contains configuration for JWT authentication
type JWTAuthConfig struct {
	JWKSURL          string
	ExpectedIssuer   string
	ExpectedAudience string
	Timeout          time.Duration
}

// JWTAuthMiddleware validates identity provider bearer tokens and places the
// resolved principal in request context. Requests without credentials carry
// the anonymous principal; the route guard decides what that may access.
type JWTAuthMiddleware struct {
	jwksURL          string
	expectedIssuer   string
	expectedAudience string
	httpClient       *http.Client
	store            PrincipalStore

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	lastFetch time.Time
}

// NewJWTAuthMiddleware creates a new JWT authentication middleware
func NewJWTAuthMiddleware(config JWTAuthConfig, store PrincipalStore) *JWTAuthMiddleware {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &JWTAuthMiddleware{
		jwksURL:          config.JWKSURL,
		expectedIssuer:   config.ExpectedIssuer,
		expectedAudience: config.ExpectedAudience,
		httpClient:       &http.Client{Timeout: timeout},
		store:            store,
		keys:             make(map[string]*rsa.PublicKey),
	}
}

// ResolvePrincipal returns a middleware that attaches a principal to every
// request: the identity behind a valid bearer token, or anonymous when no
// token is presented. A present-but-invalid token is rejected outright.
func (j *JWTAuthMiddleware) ResolvePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			ctx := utils.SetPrincipal(r.Context(), models.AnonymousPrincipal())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		tokenString, err := utils.ExtractBearerToken(r)
		if err != nil {
			slog.Warn("Failed to extract bearer token", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or missing authorization header")
			return
		}

		claims, err := j.validateToken(tokenString)
		if err != nil {
			slog.Warn("Token validation failed", "error", err, "path", r.URL.Path, "method", r.Method)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		principal, err := j.store.ResolvePrincipal(r.Context(), claims)
		if err != nil {
			slog.Error("Failed to resolve principal", "error", err, "sub", claims.Subject)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		slog.Info("User authenticated successfully",
			"userId", principal.UserID,
			"role", principal.Role,
			"path", r.URL.Path,
			"method", r.Method)

		ctx := utils.SetPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validateToken validates a JWT token and returns its claims
func (j *JWTAuthMiddleware) validateToken(tokenString string) (*models.UserClaims, error) {
	if err := j.ensureKeysFresh(); err != nil {
		return nil, fmt.Errorf("failed to ensure fresh keys: %w", err)
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("missing 'kid' in token header")
		}

		publicKey, exists := j.lookupKey(kid)
		if !exists {
			// Key rotation at the provider; refresh once
			slog.Info("Key not found, refreshing JWKS", "kid", kid)
			if err := j.fetchJWKS(); err != nil {
				return nil, fmt.Errorf("failed to refresh JWKS: %w", err)
			}
			publicKey, exists = j.lookupKey(kid)
			if !exists {
				return nil, fmt.Errorf("no public key found for kid: %s", kid)
			}
		}

		return publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if err := j.validateStandardClaims(claims); err != nil {
		return nil, fmt.Errorf("claim validation failed: %w", err)
	}

	return claims, nil
}

// validateStandardClaims validates issuer, audience and required identity claims
func (j *JWTAuthMiddleware) validateStandardClaims(claims *models.UserClaims) error {
	if j.expectedIssuer != "" && claims.Issuer != j.expectedIssuer {
		return fmt.Errorf("invalid issuer: expected %s, got %s", j.expectedIssuer, claims.Issuer)
	}

	if j.expectedAudience != "" && !containsAudience(claims.Audience, j.expectedAudience) {
		return fmt.Errorf("invalid audience: expected %s, got %v", j.expectedAudience, claims.Audience)
	}

	if claims.Subject == "" {
		return fmt.Errorf("subject claim is missing")
	}

	if claims.Email == "" {
		return fmt.Errorf("email claim is missing")
	}

	return nil
}

// containsAudience checks if the audience list contains the expected audience
func containsAudience(audiences jwt.ClaimStrings, expected string) bool {
	for _, aud := range audiences {
		if aud == expected {
			return true
		}
	}
	return false
}

// lookupKey returns the cached public key for the key ID
func (j *JWTAuthMiddleware) lookupKey(kid string) (*rsa.PublicKey, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	key, ok := j.keys[kid]
	return key, ok
}

// fetchJWKS fetches the JWKS from the configured endpoint
func (j *JWTAuthMiddleware) fetchJWKS() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.jwksURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := j.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch JWKS: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("JWKS endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read JWKS response: %w", err)
	}

	var jwks JWKS
	if err := json.Unmarshal(body, &jwks); err != nil {
		return fmt.Errorf("failed to parse JWKS: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey)
	for _, key := range jwks.Keys {
		if key.Kty == "RSA" && key.Use == "sig" {
			publicKey, err := buildRSAPublicKey(key.N, key.E)
			if err != nil {
				slog.Warn("Failed to build RSA public key", "kid", key.Kid, "error", err)
				continue
			}
			keys[key.Kid] = publicKey
		}
	}

	j.mu.Lock()
	j.keys = keys
	j.lastFetch = time.Now()
	j.mu.Unlock()

	slog.Info("Successfully fetched JWKS", "keysCount", len(keys))
	return nil
}

// buildRSAPublicKey constructs an RSA public key from modulus and exponent
func buildRSAPublicKey(nStr, eStr string) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(nStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := base64.RawURLEncoding.DecodeString(eStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	n := new(big.Int).SetBytes(nBytes)
	e := new(big.Int).SetBytes(eBytes)

	if !e.IsInt64() || e.Int64() < 2 {
		return nil, fmt.Errorf("invalid exponent")
	}

	return &rsa.PublicKey{
		N: n,
		E: int(e.Int64()),
	}, nil
}

// ensureKeysFresh refreshes JWKS keys when empty or older than an hour
func (j *JWTAuthMiddleware) ensureKeysFresh() error {
	j.mu.RLock()
	stale := len(j.keys) == 0 || time.Since(j.lastFetch) > time.Hour
	j.mu.RUnlock()

	if stale {
		return j.fetchJWKS()
	}
	return nil
}
