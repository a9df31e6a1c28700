package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ado1d/profile-taks-manager/internal/auth"
)

type key string

const claimsKey key = "claims"

// GetClaims returns the verified session claims stored by JWTMiddleware.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// WithClaims stores claims in ctx. Exported for handler tests.
func WithClaims(ctx context.Context, c *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// JWTMiddleware verifies the Authorization: Bearer token and stores the
// resulting claims in the request context. The token is read from the header
// only; the response for missing, malformed, bad-signature, and expired
// tokens is the same 401 body.
func JWTMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				unauthorized(w)
				return
			}

			claims, err := auth.ParseToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "invalid or missing token"})
}
