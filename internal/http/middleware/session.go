package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Luiz-campos3/Onway-Monitor/internal/service"
	"github.com/Luiz-campos3/Onway-Monitor/internal/session"
)

type contextKey string

const sessionCtxKey contextKey = "session"

// SessionContext is the validated session attached to a request.
type SessionContext struct {
	ID    string
	State session.State
}

// Session validates the bearer session token and loads the session state.
func Session(tokens *service.TokenService, store session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			sessionID, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			state, err := store.Get(r.Context(), sessionID)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					http.Error(w, "session expired", http.StatusUnauthorized)
					return
				}
				http.Error(w, "session lookup failed", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), sessionCtxKey, SessionContext{ID: sessionID, State: state})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireStatus rejects requests whose session is not in the given status.
func RequireStatus(status session.Status) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc, ok := FromContext(r.Context())
			if !ok {
				http.Error(w, "missing session", http.StatusUnauthorized)
				return
			}
			if sc.State.Status != status {
				http.Error(w, "forbidden for current session state", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// FromContext retrieves the session attached by the Session middleware.
func FromContext(ctx context.Context) (SessionContext, bool) {
	val := ctx.Value(sessionCtxKey)
	if val == nil {
		return SessionContext{}, false
	}
	sc, ok := val.(SessionContext)
	return sc, ok
}
