// Package common defines shared constants and sentinel errors used across
// the Tempest client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// session lifecycle errors
	ErrSessionExpired = errors.New("session expired")
	ErrNoSession      = errors.New("no active session")
)
