// internal/pkg/session/firebase_test.go
package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTokenError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "expired token",
			err:  errors.New("ID token has expired at: 1756700000"),
			want: true,
		},
		{
			name: "invalid token",
			err:  errors.New("failed to verify token signature; invalid ID token"),
			want: true,
		},
		{
			name: "malformed token",
			err:  errors.New("incorrect number of segments; malformed jwt"),
			want: true,
		},
		{
			name: "network failure is a provider error",
			err:  errors.New("Get \"https://www.googleapis.com/...\": connection refused"),
			want: false,
		},
		{
			name: "timeout is a provider error",
			err:  errors.New("context deadline exceeded"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTokenError(tt.err))
		})
	}
}
