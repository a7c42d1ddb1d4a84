package devserver

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator"
)

const dateLayout = "2006-01-02"

type registerRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required"`
	FullName *string `json:"full_name"`
}

type userOut struct {
	ID       int     `json:"id"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	IsActive bool    `json:"is_active"`
}

type tokenOut struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// subscriptionIn is the body of create and update calls. Pointers tell an
// absent key from a zero value; "required" only rejects absent keys.
type subscriptionIn struct {
	Name            *string  `json:"name" validate:"required"`
	Provider        *string  `json:"provider"`
	Amount          *float64 `json:"amount"`
	Currency        *string  `json:"currency"`
	BillingCycle    *string  `json:"billing_cycle" validate:"required"`
	NextPaymentDate *string  `json:"next_payment_date"`
	AutoDetected    *bool    `json:"auto_detected"`
	IsActive        *bool    `json:"is_active"`
	Notes           *string  `json:"notes"`
}

var errInvalidDate = errors.New("invalid date format")

func (in subscriptionIn) checkDate() error {
	if in.NextPaymentDate == nil {
		return nil
	}
	if _, err := time.Parse(dateLayout, *in.NextPaymentDate); err != nil {
		return errInvalidDate
	}
	return nil
}

// toSubscription applies defaults for a new record.
func (in subscriptionIn) toSubscription() Subscription {
	sub := Subscription{
		Provider:        in.Provider,
		Amount:          in.Amount,
		Currency:        "INR",
		NextPaymentDate: in.NextPaymentDate,
		IsActive:        true,
		Notes:           in.Notes,
	}
	if in.Name != nil {
		sub.Name = *in.Name
	}
	if in.BillingCycle != nil {
		sub.BillingCycle = *in.BillingCycle
	}
	if in.Currency != nil {
		sub.Currency = *in.Currency
	}
	if in.AutoDetected != nil {
		sub.AutoDetected = *in.AutoDetected
	}
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}
	return sub
}

// apply overlays the keys present in in onto sub.
func (in subscriptionIn) apply(sub *Subscription) {
	if in.Name != nil {
		sub.Name = *in.Name
	}
	if in.Provider != nil {
		sub.Provider = in.Provider
	}
	if in.Amount != nil {
		sub.Amount = in.Amount
	}
	if in.Currency != nil {
		sub.Currency = *in.Currency
	}
	if in.BillingCycle != nil {
		sub.BillingCycle = *in.BillingCycle
	}
	if in.NextPaymentDate != nil {
		sub.NextPaymentDate = in.NextPaymentDate
	}
	if in.AutoDetected != nil {
		sub.AutoDetected = *in.AutoDetected
	}
	if in.IsActive != nil {
		sub.IsActive = *in.IsActive
	}
	if in.Notes != nil {
		sub.Notes = in.Notes
	}
}

// fieldError is one entry of a 422 detail list.
type fieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func missingField(name string) fieldError {
	return fieldError{Loc: []string{"body", name}, Msg: "field required", Type: "value_error.missing"}
}

func validationDetail(errs validator.ValidationErrors) []fieldError {
	out := make([]fieldError, 0, len(errs))
	for _, e := range errs {
		switch e.ActualTag() {
		case "required":
			out = append(out, missingField(e.Field()))
		case "email":
			out = append(out, fieldError{Loc: []string{"body", e.Field()}, Msg: "value is not a valid email address", Type: "value_error.email"})
		default:
			out = append(out, fieldError{Loc: []string{"body", e.Field()}, Msg: "invalid value", Type: "value_error"})
		}
	}
	return out
}
