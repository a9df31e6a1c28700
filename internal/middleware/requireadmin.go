package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/ado1d/profile-taks-manager/internal/models"
)

// RequireAdmin rejects authenticated non-admin callers with 403.
// Must run after JWTMiddleware.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if claims.Role != models.RoleAdmin {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			json.NewEncoder(w).Encode(map[string]string{"error": "admin role required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
