// Package client contains the transport layer of the UDLM client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Register, ListSubscriptions, CreateSubscription and Ping.
//  2. A concrete HTTP/JSON implementation (see HTTPClient) that talks to the
//     /api/v1 endpoints, attaches bearer tokens and request ids, records
//     Prometheus metrics and maps responses to errors.
//
// # Error Handling
//
// Transport failures are reported as ErrUnavailable. Non-2xx responses become
// *APIError, whose Detail carries the server's human-readable "detail" field;
// 401 and 403 additionally match ErrUnauthorized with errors.Is. Bodies that
// cannot be decoded where a body is required yield ErrMalformedResponse, and
// a successful login without an access token yields ErrMissingToken.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. Every call honours the context and
// the configured request timeout.
package client
