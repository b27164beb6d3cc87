// Package services implements the authentication boundary: registration,
// login and logout over the users collection and the session state.
package services

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/models"
)

// Credentials carries a login or registration request.
type Credentials struct {
	Email    string
	Password string
}

// AuthService is the authentication contract.
//
// Register records a new user without logging them in. Login validates the
// credentials, updates the session and returns the resulting principal.
// Logout clears the session; it is a no-op when nobody is logged in.
type AuthService interface {
	Register(ctx context.Context, creds Credentials) (*models.Principal, error)
	Login(ctx context.Context, creds Credentials) (*models.Principal, error)
	Logout(ctx context.Context) error
}
