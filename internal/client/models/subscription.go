// Package models defines the subscription records exchanged with the UDLM
// API and the draft form used to create them.
package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// BillingCycle is how often a subscription is charged.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// DefaultCurrency is attached to every subscription created by the client.
const DefaultCurrency = "INR"

var ErrUnknownBillingCycle = errors.New("unknown billing cycle")

// ParseBillingCycle accepts "monthly" or "yearly" in any case.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch BillingCycle(strings.ToLower(strings.TrimSpace(s))) {
	case BillingMonthly:
		return BillingMonthly, nil
	case BillingYearly:
		return BillingYearly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBillingCycle, s)
	}
}

// ID is the server-assigned identifier of a persisted subscription. The
// server currently sends integers; the client treats the value as opaque.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("subscription id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// NewSubscription is the body of a create request. Optional fields are
// pointers so that absent values are sent as JSON null.
type NewSubscription struct {
	Name            string       `json:"name"`
	Provider        *string      `json:"provider"`
	Amount          *float64     `json:"amount"`
	Currency        string       `json:"currency"`
	BillingCycle    BillingCycle `json:"billing_cycle"`
	NextPaymentDate *string      `json:"next_payment_date"`
	AutoDetected    bool         `json:"auto_detected"`
	IsActive        bool         `json:"is_active"`
	Notes           *string      `json:"notes"`
}

// Subscription is a record as returned by the server.
type Subscription struct {
	ID ID `json:"id"`
	NewSubscription
}

// MonthlyAmount is the amount normalised to one month. Records without an
// amount contribute zero; yearly amounts are spread over 12 months.
func (s Subscription) MonthlyAmount() float64 {
	if s.Amount == nil {
		return 0
	}
	if s.BillingCycle == BillingYearly {
		return *s.Amount / 12
	}
	return *s.Amount
}

// TotalMonthly sums MonthlyAmount over subs.
func TotalMonthly(subs []Subscription) float64 {
	var total float64
	for _, s := range subs {
		total += s.MonthlyAmount()
	}
	return total
}

func (s Subscription) String() string {
	provider := "-"
	if s.Provider != nil {
		provider = *s.Provider
	}
	amount := "-"
	if s.Amount != nil {
		amount = fmt.Sprintf("%.2f %s", *s.Amount, s.Currency)
	}
	return fmt.Sprintf("[%s] %s (%s) %s/%s", s.ID, s.Name, provider, amount, s.BillingCycle)
}
