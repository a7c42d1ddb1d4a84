package services

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/udlm/internal/client/models"
)

// fakeClient implements client.Client for the service tests. Each call is
// counted and its arguments captured; the *Gate channels, when set, hold the
// call until the test sends on (or closes) them.
type fakeClient struct {
	mu sync.Mutex

	LoginToken string
	LoginErr   error
	LoginGate  chan struct{}

	RegisterErr error

	ListRet  []models.Subscription
	ListErr  error
	ListGate chan struct{}

	CreateRet  models.Subscription
	CreateErr  error
	CreateGate chan struct{}

	PingErr error

	LoginCalls    int
	RegisterCalls int
	ListCalls     int
	CreateCalls   int

	LastLoginUser    string
	LastLoginPass    string
	LastRegisterUser string
	LastRegisterName string
	LastListToken    string
	LastCreateToken  string
	LastCreateBody   models.NewSubscription
}

func wait(ctx context.Context, gate chan struct{}) {
	if gate == nil {
		return
	}
	select {
	case <-gate:
	case <-ctx.Done():
	}
}

func (f *fakeClient) Login(ctx context.Context, username string, password string) (string, error) {
	f.mu.Lock()
	f.LoginCalls++
	f.LastLoginUser, f.LastLoginPass = username, password
	gate := f.LoginGate
	f.mu.Unlock()

	wait(ctx, gate)
	return f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, email string, password string, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.RegisterCalls++
	f.LastRegisterUser, f.LastRegisterName = email, fullName
	return f.RegisterErr
}

func (f *fakeClient) ListSubscriptions(ctx context.Context, token string) ([]models.Subscription, error) {
	f.mu.Lock()
	f.ListCalls++
	f.LastListToken = token
	gate := f.ListGate
	f.mu.Unlock()

	wait(ctx, gate)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]models.Subscription, len(f.ListRet))
	copy(out, f.ListRet)
	return out, nil
}

func (f *fakeClient) CreateSubscription(ctx context.Context, token string, sub models.NewSubscription) (models.Subscription, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.LastCreateToken = token
	f.LastCreateBody = sub
	gate := f.CreateGate
	f.mu.Unlock()

	wait(ctx, gate)
	return f.CreateRet, f.CreateErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) calls() (login, register, list, create int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LoginCalls, f.RegisterCalls, f.ListCalls, f.CreateCalls
}

func rec(id string, name string, amount *float64, cycle models.BillingCycle) models.Subscription {
	return models.Subscription{
		ID: models.ID(id),
		NewSubscription: models.NewSubscription{
			Name: name, Amount: amount, Currency: "INR", BillingCycle: cycle, IsActive: true,
		},
	}
}

func f64(v float64) *float64 { return &v }
