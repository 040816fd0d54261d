package middleware

import (
	"net/http"
	"strings"

	"yuconz/internal/domain/auth"
	"yuconz/internal/transport/http/api"
)

// Auth resolves the bearer token to a live session. The token only names
// the session; the registry is the source of truth, so a logged-out
// session stops authenticating immediately even if the token is still
// within its TTL. Requests without a usable token pass through
// unauthenticated and are rejected by the handlers that need a session.
func Auth(secret string, registry *auth.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			session, ok := registry.Lookup(claims.SessionToken)
			if !ok || !session.IsValid() {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// RequireSession rejects unauthenticated requests. Used on route groups
// whose handlers all need a session.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSession(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
