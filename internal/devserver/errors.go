package devserver

import "errors"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrPasswordTooLong    = errors.New("password too long")
)

// Detail strings returned to clients.
const (
	detailEmailTaken         = "Email already registered"
	detailBadCredentials     = "Incorrect email or password"
	detailCouldNotValidate   = "Could not validate credentials"
	detailNotFound           = "Subscription not found"
	detailPasswordTooLong    = "Password must be at most 72 bytes"
	detailInternal           = "Internal server error"
	detailInvalidRequestBody = "Invalid request body"
)
