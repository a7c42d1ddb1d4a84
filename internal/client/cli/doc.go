// Package cli is the interactive UDLM command-line client.
//
// It wires configuration, the HTTP API client, the session manager and the
// subscription store behind a line-oriented REPL. A background watcher pings
// the server and shows "online" or "offline" in the prompt; optional
// Prometheus metrics for API calls are served when a metrics address is set.
//
// Commands: register, login, logout, list, refresh, add, total, status, exit.
// App.Run blocks until the user exits.
package cli
