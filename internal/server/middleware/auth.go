// Package middleware provides HTTP middleware for authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// callerKey is the context key for storing the authenticated caller.
const callerKey ContextKey = "caller"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (CallerGetter, error)
}

// CallerGetter extracts the caller identity from token claims.
type CallerGetter interface {
	Caller() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds the caller to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), callerKey, claims.Caller())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="career-compass"`)
	http.Error(w, "Unauthorized", http.StatusUnauthorized)
}

// GetCaller extracts the authenticated caller from the request context.
func GetCaller(r *http.Request) (string, error) {
	caller, ok := r.Context().Value(callerKey).(string)
	if !ok || caller == "" {
		return "", fmt.Errorf("caller not found in request context")
	}
	return caller, nil
}

// CallerKey returns the context key for the caller (for testing purposes).
func CallerKey() ContextKey {
	return callerKey
}
