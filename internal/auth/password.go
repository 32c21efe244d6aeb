// Panoptes - Web Analytics Administration Dashboard
// Copyright 2026 M. Lachowski (mlachowski)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mlachowski/panoptes

package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword produces a bcrypt hash suitable for the
// auth.admin_password_hash config value.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verifier checks login attempts against the configured admin account.
type Verifier struct {
	username     string
	passwordHash string
}

// NewVerifier creates a credential verifier for the single admin account.
func NewVerifier(username, passwordHash string) *Verifier {
	return &Verifier{username: username, passwordHash: passwordHash}
}

// Verify returns ErrInvalidCredentials unless both username and password
// match. The username comparison is constant-time and the bcrypt
// comparison runs even for unknown usernames, so timing does not reveal
// which field was wrong.
func (v *Verifier) Verify(username, password string) error {
	nameOK := subtle.ConstantTimeCompare([]byte(v.username), []byte(username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password))

	if !nameOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}
