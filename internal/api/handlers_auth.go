// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/mlachowski/panoptes/internal/auth"
	"github.com/mlachowski/panoptes/internal/logging"
)

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the session token on successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login verifies admin credentials and issues a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	if h.verifier == nil || h.jwt == nil {
		rw.ServiceUnavailable("authentication is not configured")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rw.BadRequest("invalid JSON body")
		return
	}
	if req.Username == "" || req.Password == "" {
		rw.BadRequest("username and password are required")
		return
	}

	if err := h.verifier.Verify(req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			logging.Ctx(r.Context()).Warn().Str("username", req.Username).Msg("failed login attempt")
			rw.Unauthorized("invalid credentials")
			return
		}
		rw.InternalError("credential verification failed")
		return
	}

	token, err := h.jwt.GenerateToken(req.Username)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("token generation failed")
		rw.InternalError("failed to issue token")
		return
	}

	logging.Ctx(r.Context()).Info().Str("username", req.Username).Msg("admin login")
	rw.Success(LoginResponse{
		Token:     token,
		Username:  req.Username,
		ExpiresAt: time.Now().Add(h.cfg.Auth.TokenTTL),
	})
}
