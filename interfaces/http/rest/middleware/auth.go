// Package middleware holds the HTTP middleware stack: session resolution,
// request logging and request metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/RodCacioli/Authos-v2/application/ports"
	"github.com/RodCacioli/Authos-v2/pkg/auth"

	"go.uber.org/zap"
)

// Session resolves the request's session. No Authorization header means the
// caller runs local-only; a header that fails verification is rejected rather
// than silently downgraded.
func Session(verifier ports.SessionVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				ctx := auth.WithSession(r.Context(), auth.LocalOnly())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			userID, err := verifier.Verify(r.Context(), token)
			if err != nil {
				logger.Debug("session verification failed", zap.Error(err))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":true,"message":"invalid or expired session","code":401}`))
				return
			}

			ctx := auth.WithSession(r.Context(), auth.Authenticated(userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
