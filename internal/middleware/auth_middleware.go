package middleware

import (
	"context"
	"net/http"
	"strings"

	"quicknotes-server/pkg/jwt"
	"quicknotes-server/pkg/response"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller attached to the request context by
// AuthMiddleware.
type Identity struct {
	UserID   string
	Username string
}

// AuthMiddleware rejects requests without a valid bearer token. All failure
// modes answer with the same 401 body.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwt.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			identity := Identity{
				UserID:   claims.UserID,
				Username: claims.Username,
			}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(r *http.Request) (Identity, bool) {
	identity, ok := r.Context().Value(identityKey).(Identity)
	return identity, ok
}

func GetUserID(r *http.Request) string {
	identity, ok := GetIdentity(r)
	if !ok {
		return ""
	}
	return identity.UserID
}
