package controllers

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/levy-pm/co-moge-zjesc/config"
)

// CredentialChecker gates the admin panel. It exists so the shared-password
// scheme can be swapped for real auth without touching the handlers.
type CredentialChecker interface {
	Check(password string) bool
}

// PlaintextChecker compares against a single shared password. An empty
// configured password locks the panel entirely.
type PlaintextChecker struct {
	Password string
}

func (c PlaintextChecker) Check(password string) bool {
	if c.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
}

// BcryptChecker compares against a bcrypt hash.
type BcryptChecker struct {
	Hash string
}

func (c BcryptChecker) Check(password string) bool {
	if c.Hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)) == nil
}

// NewCredentialChecker prefers the hashed credential when both are set.
func NewCredentialChecker(cfg config.AdminConfig) CredentialChecker {
	if cfg.PasswordHash != "" {
		return BcryptChecker{Hash: cfg.PasswordHash}
	}
	return PlaintextChecker{Password: cfg.Password}
}
