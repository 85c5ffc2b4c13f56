package cli

import (
	"context"
	"os"
)

// getSimpleText is an indirection used to facilitate testing.
var getSimpleText = GetSimpleText

// Register prompts for an email and password and creates an account.
// Registration does not log in; the user logs in afterwards.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "Enter password", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.client.Register(ctx, email, password); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}
	printlnFn("Registered! Now use 'login'.")
	return nil
}

// Login prompts for credentials, fetches a token and moves the view to
// LoggedIn. A failed login leaves the state untouched.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getSimpleText(a.reader, "Enter password", os.Stdout)
	if err != nil {
		return err
	}

	token, err := a.client.Login(ctx, email, password)
	if err != nil {
		printlnFn("Login failed:", err.Error())
		return err
	}
	a.setLoggedIn(token)
	printlnFn("Logged in.")
	return nil
}

// Logout discards the token and cached tasks. The token itself stays valid
// server-side until it expires; disposal here is purely client-side.
func (a *App) Logout(ctx context.Context) error {
	_ = ctx
	if !a.isLoggedIn() {
		printlnFn("Not logged in.")
		return nil
	}
	a.setLoggedOut()
	printlnFn("Logged out.")
	return nil
}
