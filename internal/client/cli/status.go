package cli

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// getStatus is the prompt decoration, e.g. "(alice@example.com online)".
func (a *App) getStatus() string {
	var parts []string
	if id, ok := a.session.Identity(); ok && id.Subject != "" {
		parts = append(parts, id.Subject)
	} else if a.session.IsLoggedIn() {
		parts = append(parts, "logged in")
	}
	if m := a.Mode(); m != ModeUnknown {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

// Status prints the session and store state.
func (a *App) Status(ctx context.Context) error {
	printlnFn("Server:", a.config.ServerURL)
	if m := a.Mode(); m != ModeUnknown {
		printlnFn("Connectivity:", string(m))
	}
	printlnFn("Session:", a.session.State().String())

	if id, ok := a.session.Identity(); ok {
		if id.Subject != "" {
			printlnFn("User:", id.Subject)
		}
		if !id.ExpiresAt.IsZero() {
			printlnFn("Token expires:", id.ExpiresAt.Local().Format(time.RFC1123))
		}
	}

	if msg := a.session.ErrorMessage(); msg != "" {
		printlnFn("Last login error:", msg)
	}

	printlnFn(fmt.Sprintf("Subscriptions: %d (monthly total %.2f %s)",
		len(a.store.Subscriptions()), a.store.TotalMonthly(), a.store.Currency()))

	if msg := a.store.Error(); msg != "" {
		printlnFn("Last error:", msg)
	}
	if d := draftSummary(a.store.Draft()); d != "" {
		printlnFn("Pending draft:", d)
	}
	return nil
}
