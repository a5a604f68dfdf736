package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/triplog/triplog-backend/internal/services"
)

type contextKey string

const userIDKey contextKey = "userID"

// Auth verifies the bearer token on protected routes and puts the
// authenticated user's ID into the request context. Requests without a
// valid token never reach the handler.
func Auth(tokens *services.TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractBearerToken(r.Header.Get("Authorization"))
			if token == "" {
				unauthenticated(w, "Authorization token is required")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				unauthenticated(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the user ID placed by Auth.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// ExtractBearerToken pulls the token out of an "Authorization: Bearer
// <token>" header value; empty string when the header is absent or
// malformed.
func ExtractBearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"message": message,
	})
}
