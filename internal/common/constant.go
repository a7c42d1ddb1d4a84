// Package common contains wire-level constants shared by the UDLM client and
// the development API server.
package common

const (
	// AuthorizationHeaderName carries the bearer credential on subscription calls.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the access token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "

	// RequestIDHeaderName is set on every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-Id"
)

// API routes, relative to the configured base URL.
const (
	APIPrefix         = "/api/v1"
	LoginPath         = APIPrefix + "/auth/login"
	RegisterPath      = APIPrefix + "/auth/register"
	SubscriptionsPath = APIPrefix + "/subscriptions/"
)
