package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dreamtask/dreamtask/internal/ctxkeys"
	"github.com/dreamtask/dreamtask/internal/service"
)

// RequireSession resolves the session cookie to a user id and stores it in
// the request context. Requests without a valid session get 401.
func RequireSession(authService *service.AuthService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			var token string
			cookie, err := r.Cookie(service.SessionCookieName)
			if err == nil {
				token = cookie.Value
			}

			userID, err := authService.RequireAuth(token)
			if err != nil {
				if errors.Is(err, service.ErrUnauthenticated) {
					// Drop a stale cookie so the client stops sending it
					if token != "" {
						authService.ClearSessionCookie(w)
					}
					writeError(w, http.StatusUnauthorized, "Authentication required")
					return
				}
				slog.Error("failed to resolve session", "error", err, "path", r.URL.Path)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := ctxkeys.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
	}
}
