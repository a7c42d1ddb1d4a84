package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/udlm/internal/client/models"
)

func subscriptionCount(n int) string {
	if n == 1 {
		return "1 subscription loaded."
	}
	return fmt.Sprintf("%d subscriptions loaded.", n)
}

// List prints the subscriptions held locally and the monthly total.
func (a *App) List(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	subs := a.store.Subscriptions()
	if len(subs) == 0 {
		printlnFn("No subscriptions yet. Use 'add' to create one.")
	}
	for _, s := range subs {
		printlnFn(s.String())
	}
	return a.Total(ctx)
}

// Refresh reloads the list from the server.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	if err := a.store.Refresh(ctx, a.session.Token()); err != nil {
		if !isStale(err) {
			printlnFn(a.store.Error())
		}
		return err
	}
	printlnFn(subscriptionCount(len(a.store.Subscriptions())))
	return nil
}

func (a *App) Total(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Total monthly: %.2f %s", a.store.TotalMonthly(), a.store.Currency()))
	return nil
}

// Add fills the draft interactively and submits it. A failed submit keeps
// the draft, so the next 'add' offers the previous answers as defaults.
func (a *App) Add(ctx context.Context) error {
	if err := a.requireLogin(); err != nil {
		return err
	}

	d := a.store.Draft()

	name, err := getSimpleText(a.reader, withDefault("Name", d.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name != "" {
		a.store.SetDraftName(name)
	}

	provider, err := getSimpleText(a.reader, withClearableDefault("Provider (optional)", d.Provider), os.Stdout)
	if err != nil {
		return err
	}
	if v, ok := optionalAnswer(provider); ok {
		a.store.SetDraftProvider(v)
	}

	amount, err := getSimpleText(a.reader, withClearableDefault(fmt.Sprintf("Amount in %s (optional)", a.store.Currency()), d.Amount), os.Stdout)
	if err != nil {
		return err
	}
	if v, ok := optionalAnswer(amount); ok {
		a.store.SetDraftAmount(v)
	}

	for {
		cycle, err := getSimpleText(a.reader, withDefault("Billing cycle (monthly/yearly)", string(d.BillingCycle)), os.Stdout)
		if err != nil {
			return err
		}
		if cycle == "" {
			break
		}
		if err := a.store.SetDraftBillingCycle(cycle); err != nil {
			printlnFn("Please enter 'monthly' or 'yearly'.")
			continue
		}
		break
	}

	created, err := a.store.SubmitDraft(ctx, a.session.Token())
	if err != nil {
		if !isStale(err) {
			printlnFn(a.store.Error())
		}
		return err
	}

	printlnFn("Added:", created.String())
	return nil
}

func withDefault(prompt string, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s]", prompt, def)
}

// clearAnswer empties an optional field that already has a value.
const clearAnswer = "-"

func withClearableDefault(prompt string, def string) string {
	if def == "" {
		return prompt
	}
	return fmt.Sprintf("%s [%s, '%s' to clear]", prompt, def, clearAnswer)
}

// optionalAnswer maps a prompt answer to the new field value. A blank answer
// keeps the current value.
func optionalAnswer(answer string) (string, bool) {
	switch answer {
	case "":
		return "", false
	case clearAnswer:
		return "", true
	default:
		return answer, true
	}
}

// draftSummary is used by 'status' when a draft is pending.
func draftSummary(d models.Draft) string {
	if d == models.EmptyDraft() {
		return ""
	}
	return fmt.Sprintf("name=%q provider=%q amount=%q cycle=%s", d.Name, d.Provider, d.Amount, d.BillingCycle)
}
