package http

import (
	"net/http"
	"strings"

	"github.com/rogerio-castellano/stocksync/internal/auth"
	rl "github.com/rogerio-castellano/stocksync/internal/http/rate_limiter"
	"go.uber.org/zap"
)

// AuthMiddleware accepts a session token from the Authorization header or,
// for EventSource clients that cannot set headers, from the token query
// parameter.
func AuthMiddleware(signer *auth.Signer, revocations auth.Revocations) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			claims, err := signer.ParseToken(tokenStr, auth.KindSession)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			if revocations != nil {
				revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					zap.L().Error("revocation lookup failed", zap.Error(err))
					http.Error(w, "could not verify token", http.StatusInternalServerError)
					return
				}
				if revoked {
					http.Error(w, "token revoked", http.StatusUnauthorized)
					return
				}
			}

			ctx := auth.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// RateLimitMiddleware throttles requests per client address.
func RateLimitMiddleware(visitors *rl.Visitors) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := rl.ClientIP(r)
			if !visitors.GetVisitor(ip).Allow() {
				zap.L().Warn("rate limit exceeded", zap.String("client", ip), zap.String("path", r.URL.Path))
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
