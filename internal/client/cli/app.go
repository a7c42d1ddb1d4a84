package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/udlm/internal/client/client"
	"github.com/dmitrijs2005/udlm/internal/client/config"
	"github.com/dmitrijs2005/udlm/internal/client/services"
	"github.com/dmitrijs2005/udlm/internal/logging"
	"github.com/dmitrijs2005/udlm/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

const pingTimeout = 3 * time.Second

type App struct {
	config   *config.Config
	log      logging.Logger
	api      client.Client
	session  *services.SessionManager
	store    *services.SubscriptionStore
	gatherer prometheus.Gatherer
	reader   *bufio.Reader

	mu   sync.Mutex
	mode Mode
}

// NewApp wires the HTTP client, the session and the subscription store for
// cfg. Diagnostics go to stderr at cfg.LogLevel; stdout is left to the REPL.
func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)

	api, err := client.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout,
		client.WithLogger(logger),
		client.WithMetrics(collector),
	)
	if err != nil {
		return nil, err
	}

	a := newApp(cfg, api, logger, bufio.NewReader(os.Stdin))
	a.gatherer = reg
	return a, nil
}

func newApp(cfg *config.Config, api client.Client, logger logging.Logger, reader *bufio.Reader) *App {
	store := services.NewSubscriptionStore(api, logger, cfg.Currency)
	return &App{
		config:  cfg,
		log:     logger,
		api:     api,
		session: services.NewSessionManager(api, store, logger),
		store:   store,
		reader:  reader,
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}

// Run blocks in the REPL until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.checkOnline(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	if a.config.MetricsAddr != "" && a.gatherer != nil {
		go a.serveMetrics(ctx, a.config.MetricsAddr)
	}

	printlnFn(fmt.Sprintf("Welcome to UDLM CLI, server %s (type 'help' for commands)", a.config.ServerURL))
	runREPL(ctx, a, a.getStatus, a.reader)
	a.session.Logout()
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.api.Ping(pctx)
	cancel()

	if err != nil {
		a.log.Debug(ctx, "ping failed", logging.Err(err))
		a.setMode(ctx, ModeOffline)
		return
	}
	a.setMode(ctx, ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is
// done. A non-positive interval disables it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) serveMetrics(ctx context.Context, addr string) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metrics.Mux(a.gatherer),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	a.log.Info(ctx, "serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.log.Error(ctx, "metrics server stopped", logging.Err(err))
	}
}
