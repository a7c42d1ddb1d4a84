package cli

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/udlm/internal/client/client"
	"github.com/dmitrijs2005/udlm/internal/client/models"
	"github.com/dmitrijs2005/udlm/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInApp(t *testing.T, api *fakeAPI) *App {
	t.Helper()
	if api.token == "" {
		api.token = "tok"
	}
	a := testApp(api)
	require.NoError(t, a.session.Login(context.Background(), "alice@example.org", "pw"))
	return a
}

func TestCommands_RequireLogin(t *testing.T) {
	out := captureOutput(t)
	a := testApp(&fakeAPI{})
	ctx := context.Background()

	for _, cmd := range []func(context.Context) error{a.List, a.Refresh, a.Add, a.Total} {
		assert.ErrorIs(t, cmd(ctx), services.ErrNotAuthenticated)
	}
	assert.Contains(t, out.String(), "Please login first.")
}

func TestList(t *testing.T) {
	out := captureOutput(t)
	a := loggedInApp(t, &fakeAPI{list: []models.Subscription{
		{ID: "1", NewSubscription: models.NewSubscription{Name: "Netflix", Amount: f64(1200), Currency: "INR", BillingCycle: models.BillingYearly}},
		{ID: "2", NewSubscription: models.NewSubscription{Name: "Spotify", Amount: f64(100), Currency: "INR", BillingCycle: models.BillingMonthly}},
	}})

	require.NoError(t, a.List(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Netflix")
	assert.Contains(t, text, "Spotify")
	assert.Contains(t, text, "Total monthly: 200.00 INR")
}

func TestList_Empty(t *testing.T) {
	out := captureOutput(t)
	a := loggedInApp(t, &fakeAPI{})

	require.NoError(t, a.List(context.Background()))

	assert.Contains(t, out.String(), "No subscriptions yet.")
	assert.Contains(t, out.String(), "Total monthly: 0.00 INR")
}

func TestRefresh(t *testing.T) {
	out := captureOutput(t)
	api := &fakeAPI{}
	a := loggedInApp(t, api)

	api.list = []models.Subscription{{ID: "5", NewSubscription: models.NewSubscription{Name: "Gym"}}}
	require.NoError(t, a.Refresh(context.Background()))
	assert.Contains(t, out.String(), "1 subscription loaded.")
	require.Len(t, a.store.Subscriptions(), 1)

	api.listErr = &client.APIError{StatusCode: 500}
	require.Error(t, a.Refresh(context.Background()))
	assert.Contains(t, out.String(), services.MsgLoadFailed)
	assert.Len(t, a.store.Subscriptions(), 1)
}

func TestAdd_Success(t *testing.T) {
	out := captureOutput(t)
	api := &fakeAPI{}
	a := loggedInApp(t, api)
	prompts := stubInputs(t, "", "Netflix", "", "1200", "weekly", "yearly")

	require.NoError(t, a.Add(context.Background()))

	assert.Equal(t, "Netflix", api.lastCreate.Name)
	assert.Nil(t, api.lastCreate.Provider)
	require.NotNil(t, api.lastCreate.Amount)
	assert.Equal(t, 1200.0, *api.lastCreate.Amount)
	assert.Equal(t, models.BillingYearly, api.lastCreate.BillingCycle)
	assert.Equal(t, "INR", api.lastCreate.Currency)

	assert.Len(t, *prompts, 5, "invalid cycle is asked again")
	assert.Contains(t, out.String(), "Please enter 'monthly' or 'yearly'.")
	assert.Contains(t, out.String(), "Added:")
	assert.Len(t, a.store.Subscriptions(), 1)
	assert.InDelta(t, 100.0, a.store.TotalMonthly(), 1e-9)
	assert.Equal(t, models.EmptyDraft(), a.store.Draft())
}

func TestAdd_NameRequired(t *testing.T) {
	out := captureOutput(t)
	api := &fakeAPI{}
	a := loggedInApp(t, api)
	stubInputs(t, "", "", "Prov", "10", "")

	err := a.Add(context.Background())

	assert.ErrorIs(t, err, models.ErrNameRequired)
	assert.Contains(t, out.String(), services.MsgNameRequired)
	assert.Empty(t, api.lastCreate.Name)
	assert.Equal(t, "Prov", a.store.Draft().Provider)
}

func TestAdd_FailureKeepsDraftAsDefaults(t *testing.T) {
	out := captureOutput(t)
	api := &fakeAPI{createErr: &client.APIError{StatusCode: 400, Detail: "Duplicate"}}
	a := loggedInApp(t, api)
	stubInputs(t, "", "Gym", "", "25", "")

	require.Error(t, a.Add(context.Background()))
	assert.Contains(t, out.String(), "Duplicate")
	assert.Equal(t, "Gym", a.store.Draft().Name)

	api.createErr = nil
	prompts := stubInputs(t, "")
	require.NoError(t, a.Add(context.Background()))

	assert.Equal(t, "Gym", api.lastCreate.Name)
	assert.Contains(t, (*prompts)[0], "[Gym]")
	assert.Contains(t, (*prompts)[2], "[25]")
}

func TestAdd_DashClearsOptionalFields(t *testing.T) {
	captureOutput(t)
	api := &fakeAPI{createErr: &client.APIError{StatusCode: 500}}
	a := loggedInApp(t, api)
	stubInputs(t, "", "Gym", "Cult", "25", "")

	require.Error(t, a.Add(context.Background()))
	assert.Equal(t, "Cult", a.store.Draft().Provider)
	assert.Equal(t, "25", a.store.Draft().Amount)

	api.createErr = nil
	prompts := stubInputs(t, "", "", "-", "-", "")
	require.NoError(t, a.Add(context.Background()))

	assert.Contains(t, (*prompts)[1], "'-' to clear")
	assert.Equal(t, "Gym", api.lastCreate.Name)
	assert.Nil(t, api.lastCreate.Provider)
	assert.Nil(t, api.lastCreate.Amount)
}

func TestOptionalAnswer(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "", want: "", wantOK: false},
		{in: "-", want: "", wantOK: true},
		{in: "Amazon", want: "Amazon", wantOK: true},
	}
	for _, tt := range tests {
		got, ok := optionalAnswer(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestTotal(t *testing.T) {
	out := captureOutput(t)
	a := loggedInApp(t, &fakeAPI{list: []models.Subscription{
		{ID: "1", NewSubscription: models.NewSubscription{Name: "Cloud", Amount: f64(120), BillingCycle: models.BillingYearly}},
	}})

	require.NoError(t, a.Total(context.Background()))
	assert.Contains(t, out.String(), "Total monthly: 10.00 INR")
}
