package delivery

import (
	"context"
	"net/http"
	"strings"

	"github.com/Vovarama1992/streamgate/internal/models"
	"github.com/Vovarama1992/streamgate/internal/ports"
)

type ctxKey int

const identityKey ctxKey = iota

func AuthMiddleware(sessions ports.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			token := extractSessionToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "missing session token")
				return
			}

			identity, err := sessions.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "invalid session token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractSessionToken(r *http.Request) string {
	if t := r.Header.Get("X-Auth"); t != "" {
		return t
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

func identityFrom(ctx context.Context) *models.Identity {
	id, _ := ctx.Value(identityKey).(*models.Identity)
	return id
}
