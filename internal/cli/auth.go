package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/services"
)

// getSimpleText, getOptionalText and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getOptionalText = GetOptionalText
var getPassword = GetPassword

func (a *App) readCredentials() (services.Credentials, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return services.Credentials{}, err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return services.Credentials{}, err
	}
	defer common.WipeByteArray(password)

	return services.Credentials{Email: email, Password: string(password)}, nil
}

// Register prompts for an email and password and creates a new account.
// The new user is not logged in; a separate login is required.
func (a *App) Register(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}

	p, err := a.auth.Register(ctx, creds)
	if err != nil {
		a.log.Error(ctx, "registration failed", "error", err)
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Registered %s. Use 'login' to sign in.\n", p.Email)
	return nil
}

// Login prompts for credentials and authenticates. On success the principal
// is stored as the current session.
func (a *App) Login(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}

	p, err := a.auth.Login(ctx, creds)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		fmt.Println(err.Error())
		return err
	}

	fmt.Printf("Logged in as %s (%s)\n", p.Email, p.Role)
	return nil
}

// Whoami prints the current principal, if any.
func (a *App) Whoami(ctx context.Context) error {
	p := a.sess.Current(ctx)
	if p == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s (%s)\n", p.Email, p.Role)
	return nil
}

// Logout clears the current session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	fmt.Println("Logged out")
	return nil
}
