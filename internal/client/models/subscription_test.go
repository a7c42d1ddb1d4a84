package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 { return &v }

func sub(a *float64, cycle BillingCycle) Subscription {
	return Subscription{NewSubscription: NewSubscription{Name: "x", Amount: a, BillingCycle: cycle}}
}

func TestTotalMonthly(t *testing.T) {
	tests := []struct {
		name string
		subs []Subscription
		want float64
	}{
		{name: "empty", subs: nil, want: 0},
		{
			name: "yearly is divided by twelve",
			subs: []Subscription{sub(amount(1200), BillingYearly), sub(amount(100), BillingMonthly)},
			want: 200,
		},
		{
			name: "null amounts ignored",
			subs: []Subscription{sub(nil, BillingMonthly), sub(amount(50), BillingMonthly)},
			want: 50,
		},
		{
			name: "unknown cycle counted as monthly",
			subs: []Subscription{sub(amount(10), BillingCycle("weekly"))},
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, TotalMonthly(tt.subs), 1e-9)
		})
	}
}

func TestParseBillingCycle(t *testing.T) {
	c, err := ParseBillingCycle(" Yearly ")
	require.NoError(t, err)
	assert.Equal(t, BillingYearly, c)

	c, err = ParseBillingCycle("monthly")
	require.NoError(t, err)
	assert.Equal(t, BillingMonthly, c)

	_, err = ParseBillingCycle("weekly")
	require.ErrorIs(t, err, ErrUnknownBillingCycle)
}

func TestSubscription_UnmarshalServerRecord(t *testing.T) {
	body := `{
		"id": 7,
		"name": "Netflix",
		"provider": null,
		"amount": 649.0,
		"currency": "INR",
		"billing_cycle": "monthly",
		"next_payment_date": "2025-01-05",
		"auto_detected": false,
		"is_active": true,
		"notes": null
	}`

	var s Subscription
	require.NoError(t, json.Unmarshal([]byte(body), &s))

	assert.Equal(t, ID("7"), s.ID)
	assert.Equal(t, "Netflix", s.Name)
	assert.Nil(t, s.Provider)
	require.NotNil(t, s.Amount)
	assert.Equal(t, 649.0, *s.Amount)
	require.NotNil(t, s.NextPaymentDate)
	assert.Equal(t, "2025-01-05", *s.NextPaymentDate)
	assert.True(t, s.IsActive)
}

func TestID_UnmarshalJSON(t *testing.T) {
	var id ID
	require.NoError(t, json.Unmarshal([]byte(`"abc"`), &id))
	assert.Equal(t, ID("abc"), id)

	require.NoError(t, json.Unmarshal([]byte(`42`), &id))
	assert.Equal(t, ID("42"), id)

	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.Equal(t, ID(""), id)

	require.Error(t, json.Unmarshal([]byte(`{}`), &id))
}

func TestSubscription_String(t *testing.T) {
	p := "Spotify"
	s := Subscription{ID: "3", NewSubscription: NewSubscription{
		Name: "Music", Provider: &p, Amount: amount(119), Currency: "INR", BillingCycle: BillingMonthly,
	}}
	assert.Equal(t, "[3] Music (Spotify) 119.00 INR/monthly", s.String())

	bare := Subscription{ID: "4", NewSubscription: NewSubscription{Name: "Gym", BillingCycle: BillingYearly}}
	assert.Equal(t, "[4] Gym (-) -/yearly", bare.String())
}
