// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Hudson5577/Hackathon-2025/auth"
)

type claimsKey struct{}

// ClaimsFromContext returns the verified claims stored by RequireAuth
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok && claims != nil
}

// WithClaims returns a copy of ctx carrying claims
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// RequireAuth verifies the bearer token before calling next
func RequireAuth(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header.Get("Authorization"))
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Token is missing")
			return
		}

		claims, err := tokens.Verify(token)
		if errors.Is(err, auth.ErrExpiredToken) {
			ErrorResponse(w, http.StatusUnauthorized, "Token has expired")
			return
		}
		if err != nil {
			ErrorResponse(w, http.StatusUnauthorized, "Token is invalid")
			return
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// RequireAdmin verifies the bearer token and the admin role
func RequireAdmin(tokens *auth.TokenManager, next http.HandlerFunc) http.HandlerFunc {
	return RequireAuth(tokens, func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if !claims.IsAdmin() {
			slog.Warn("admin route denied", "user_id", claims.UserID, "path", r.URL.Path)
			ErrorResponse(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	})
}
