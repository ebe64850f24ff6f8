// Package session resolves bearer credentials into authenticated store users.
package session

import (
	"context"
	"errors"
)

var (
	// ErrUnauthenticated is returned when no valid session exists for the
	// presented credential.
	ErrUnauthenticated = errors.New("session: unauthenticated")

	// ErrProviderUnavailable is returned when the identity provider could not
	// be reached or failed internally. Callers must not treat this as a
	// signed-out session.
	ErrProviderUnavailable = errors.New("session: provider unavailable")
)

// UserInfo describes the authenticated user as reported by the provider.
type UserInfo struct {
	UID           string
	Email         string
	Name          string
	PhotoURL      string
	EmailVerified bool
}

// Provider verifies session credentials against an identity provider.
type Provider interface {
	// Verify checks the given ID token and returns the user it belongs to.
	// Returns ErrUnauthenticated for invalid, expired or revoked tokens and
	// ErrProviderUnavailable for transport or provider failures.
	Verify(ctx context.Context, idToken string) (*UserInfo, error)

	// Revoke invalidates all sessions for the given user.
	Revoke(ctx context.Context, uid string) error
}
