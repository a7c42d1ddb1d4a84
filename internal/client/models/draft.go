package models

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator"
)

var ErrNameRequired = errors.New("name is required")

var validate = validator.New()

// leadingNumber matches the decimal prefix of an amount such as "12abc".
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Draft holds the raw form input for a subscription that has not been
// submitted yet. Amount is kept as typed.
type Draft struct {
	Name         string       `json:"name" validate:"required"`
	Provider     string       `json:"provider"`
	Amount       string       `json:"amount"`
	BillingCycle BillingCycle `json:"billing_cycle"`
}

// EmptyDraft is the state of the form after a reset.
func EmptyDraft() Draft {
	return Draft{BillingCycle: BillingMonthly}
}

// Validate checks that the name is not blank. No other field is checked.
func (d Draft) Validate() error {
	trimmed := d
	trimmed.Name = strings.TrimSpace(d.Name)
	if err := validate.Struct(trimmed); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return ErrNameRequired
		}
		return err
	}
	return nil
}

// ToNewSubscription builds the create payload. An empty provider becomes
// null. The amount is read from its leading decimal prefix, so "12abc"
// becomes 12; it becomes null when empty, without a numeric prefix, or not
// finite.
func (d Draft) ToNewSubscription(currency string) NewSubscription {
	if currency == "" {
		currency = DefaultCurrency
	}
	cycle := d.BillingCycle
	if cycle == "" {
		cycle = BillingMonthly
	}

	ns := NewSubscription{
		Name:         d.Name,
		Currency:     currency,
		BillingCycle: cycle,
		IsActive:     true,
	}

	if d.Provider != "" {
		p := d.Provider
		ns.Provider = &p
	}

	if v, ok := parseAmount(d.Amount); ok {
		ns.Amount = &v
	}

	return ns
}

func parseAmount(s string) (float64, bool) {
	prefix := leadingNumber.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
