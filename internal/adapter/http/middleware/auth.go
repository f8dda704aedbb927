package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// AccountContextKey is the context key for the authenticated account ID
	AccountContextKey ContextKey = "account_id"

	// SessionCookieName is the cookie carrying the session token for
	// browser clients. API clients send the same token as a Bearer token.
	SessionCookieName = "session"
)

// SessionResolver resolves a session token to an account ID.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (string, error)
}

// SessionAuth creates a middleware that requires a valid session. The
// token comes from the session cookie or the Authorization header.
func SessionAuth(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				http.Error(w, "missing session token", http.StatusUnauthorized)
				return
			}

			accountID, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				http.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountContextKey, accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the session token from the Authorization header or
// the session cookie, in that order.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}

		return ""
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}

	return cookie.Value
}

// SessionTokenFromRequest exposes the raw token for handlers that need
// it, such as logout.
func SessionTokenFromRequest(r *http.Request) string {
	return extractToken(r)
}

// AccountIDFromContext extracts the authenticated account ID from context
func AccountIDFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountContextKey).(string)
	return accountID, ok
}
