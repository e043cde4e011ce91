package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type contextKey string

const claimsKey contextKey = "claims"

// ClaimsFromContext returns the verified claims stored by Middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Middleware verifies the bearer token and stores the claims on the request
// context. Missing, invalid and expired tokens all produce 401, with the
// expired case carrying its own detail.
func Middleware(service *Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "authorization required")
				return
			}
			claims, err := service.Verify(tokenString)
			if err != nil {
				httpx.RespondError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if len(bearer) > 7 && strings.EqualFold(bearer[:7], "bearer ") {
		return bearer[7:]
	}
	return ""
}
