package services

import (
	"errors"

	"github.com/dmitrijs2005/udlm/internal/client/client"
)

// User-facing outcome messages.
const (
	MsgLoggedIn           = "Logged in successfully."
	MsgAccountCreated     = "Account created. Logging you in…"
	MsgLoginFailed        = "Login failed"
	MsgRegistrationFailed = "Registration failed"
	MsgLoadFailed         = "Failed to load subscriptions"
	MsgCreateFailed       = "Failed to create subscription"
	MsgNameRequired       = "Name is required for a subscription."
)

// DefaultFullName is sent as full_name on registration.
const DefaultFullName = "UDLM User"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrAlreadyLoggedIn  = errors.New("already logged in")
	ErrStaleSession     = errors.New("session ended before the response arrived")
)

// messageFor prefers the server's detail and falls back to the generic
// per-operation message.
func messageFor(err error, fallback string) string {
	if d := client.Detail(err); d != "" {
		return d
	}
	return fallback
}
