// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/mlachowski/panoptes/internal/logging"
)

type contextKey string

const usernameKey contextKey = "username"

// UsernameFromContext returns the authenticated username, or "" when the
// request was not authenticated (auth disabled).
func UsernameFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(usernameKey).(string); ok {
		return name
	}
	return ""
}

// Middleware validates Bearer tokens on protected routes.
type Middleware struct {
	manager *JWTManager
	enabled bool
}

// NewMiddleware creates the auth middleware. With enabled=false every
// request passes through unauthenticated; intended for local development
// only.
func NewMiddleware(manager *JWTManager, enabled bool) *Middleware {
	return &Middleware{manager: manager, enabled: enabled}
}

// RequireAuth rejects requests without a valid Bearer token.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			http.Error(w, "missing authorization token", http.StatusUnauthorized)
			return
		}

		claims, err := m.manager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("rejected token")
			http.Error(w, "invalid authorization token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
