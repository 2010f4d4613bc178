package service

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the services. Handlers map these onto the
// HTTP taxonomy: validation, not-found, invalid-credentials.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrNotFound           = errors.New("not found")
	ErrEmptyQuery         = errors.New("no query provided")
	ErrNotEnoughMembers   = errors.New("chat should have at least two members")
	ErrUnknownMember      = errors.New("member does not exist")
	ErrUnknownChat        = errors.New("chat does not exist")
)

// The sqlite driver does not surface a typed error for constraint failures.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
