package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/udlm/internal/client/services"
)

// getSimpleText and getPassword are swapped out in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return "", "", err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return "", "", err
	}
	defer clear(password)

	return email, string(password), nil
}

// Register creates an account and logs in with the same credentials.
func (a *App) Register(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in, logout first.")
		return services.ErrAlreadyLoggedIn
	}

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	err = a.session.Register(ctx, email, password)
	if err == nil {
		printlnFn("Account created.")
	}
	a.reportSession()
	return err
}

// Login authenticates and loads the subscription list.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already logged in, logout first.")
		return services.ErrAlreadyLoggedIn
	}

	email, password, err := a.readCredentials()
	if err != nil {
		return err
	}

	err = a.session.Login(ctx, email, password)
	a.reportSession()
	return err
}

func (a *App) reportSession() {
	if msg := a.session.ErrorMessage(); msg != "" {
		printlnFn(msg)
		return
	}
	if msg := a.session.StatusMessage(); msg != "" {
		printlnFn(msg)
	}
	if !a.session.IsLoggedIn() {
		return
	}
	if msg := a.store.Error(); msg != "" {
		printlnFn(msg)
		return
	}
	printlnFn(subscriptionCount(len(a.store.Subscriptions())))
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout()
	printlnFn("Logged out.")
	return nil
}

// requireLogin prints a hint when there is no session.
func (a *App) requireLogin() error {
	if a.isLoggedIn() {
		return nil
	}
	printlnFn("Please login first.")
	return services.ErrNotAuthenticated
}

func isStale(err error) bool {
	return errors.Is(err, services.ErrStaleSession)
}
