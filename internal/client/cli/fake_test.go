package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/udlm/internal/client/config"
	"github.com/dmitrijs2005/udlm/internal/client/models"
	"github.com/dmitrijs2005/udlm/internal/logging"
)

// fakeAPI implements client.Client.
type fakeAPI struct {
	mu sync.Mutex

	token     string
	loginErr  error
	regErr    error
	list      []models.Subscription
	listErr   error
	createErr error
	pingErr   error
	nextID    int

	lastCreate models.NewSubscription
	pings      int
}

func (f *fakeAPI) Login(context.Context, string, string) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeAPI) Register(context.Context, string, string, string) error {
	return f.regErr
}

func (f *fakeAPI) ListSubscriptions(context.Context, string) ([]models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Subscription(nil), f.list...), nil
}

func (f *fakeAPI) CreateSubscription(_ context.Context, _ string, sub models.NewSubscription) (models.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastCreate = sub
	if f.createErr != nil {
		return models.Subscription{}, f.createErr
	}
	f.nextID++
	created := models.Subscription{ID: models.ID(fmt.Sprint(f.nextID)), NewSubscription: sub}
	f.list = append(f.list, created)
	return created, nil
}

func (f *fakeAPI) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings++
	return f.pingErr
}

func (f *fakeAPI) setPingErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pingErr = err
}

func testApp(api *fakeAPI) *App {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return newApp(cfg, api, logging.Nop(), bufio.NewReader(strings.NewReader("")))
}

// captureOutput collects printlnFn output for the test.
func captureOutput(t *testing.T) *strings.Builder {
	t.Helper()
	var out strings.Builder
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) { return fmt.Fprintln(&out, a...) }
	t.Cleanup(func() { printlnFn = orig })
	return &out
}

// stubInputs answers text prompts from answers in order, then with "".
func stubInputs(t *testing.T, password string, answers ...string) *[]string {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	var prompts []string
	getSimpleText = func(_ *bufio.Reader, prompt string, _ io.Writer) (string, error) {
		prompts = append(prompts, prompt)
		if len(answers) == 0 {
			return "", nil
		}
		a := answers[0]
		answers = answers[1:]
		return a, nil
	}
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
	return &prompts
}

func f64(v float64) *float64 { return &v }
