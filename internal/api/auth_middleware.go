package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/LabelWise-io/labelwise/internal/models"
)

type contextKey string

const userContextKey contextKey = "currentUser"

// BearerAuthMiddleware validates the bearer token and resolves it to a user
// record. Any failure, including a token whose subject no longer exists,
// yields 401.
func (api *Api) BearerAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "Authorization header required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			unauthorized(w, "Authorization header format must be Bearer {token}")
			return
		}

		subject, err := api.Tokens.ValidateToken(parts[1])
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		user, err := api.Store.GetUserByEmail(subject)
		if err != nil {
			unauthorized(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentUser returns the authenticated user placed on the context by
// BearerAuthMiddleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, msg, http.StatusUnauthorized)
}
