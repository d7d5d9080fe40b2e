package auth

import (
	"context"

	"github.com/mmynk/groupspend/internal/models"
)

// Authenticator establishes who a member is. Services depend on this
// interface and PasswordAuthenticator is the implementation main wires in.
type Authenticator interface {
	// Register creates an account. The username becomes the member's display
	// name in every group they join, so it must be unique.
	Register(ctx context.Context, username, email, credential string) (*models.User, error)

	// Authenticate returns the account owning email if credential matches.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential rejects credentials too weak to register with.
	ValidateCredential(credential string) error
}

var _ Authenticator = (*PasswordAuthenticator)(nil)
