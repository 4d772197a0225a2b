package auth

import (
	"context"

	"github.com/divvyup/divvyup/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password,
// passkeys, OAuth, etc.) without changing the API layer.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	// The credential format depends on the implementation (e.g., password,
	// OAuth token, etc.). Returns the created user or an error.
	Register(ctx context.Context, email, firstName, lastName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if
	// successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's
	// requirements. For passwords: check length, complexity, etc.
	ValidateCredential(credential string) error
}
