// Package devserver is an in-memory rendition of the UDLM HTTP API: account
// registration, password login issuing HS256 bearer tokens, and per-user
// subscription CRUD. It exists for local development of the client and for
// end-to-end tests; nothing is persisted.
package devserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/udlm/internal/common"
	"github.com/dmitrijs2005/udlm/internal/logging"
	"github.com/dmitrijs2005/udlm/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg      *Config
	log      logging.Logger
	users    *UserService
	subs     *SubscriptionService
	validate *validator.Validate
	metrics  *httpMetrics
	gatherer prometheus.Gatherer
}

// NewServer builds a server with empty stores. Metrics are registered with
// a private registry and served on /metrics.
func NewServer(cfg *Config, log logging.Logger) *Server {
	reg := prometheus.NewRegistry()
	return &Server{
		cfg:      cfg,
		log:      log.With("component", "devserver"),
		users:    NewUserService(cfg.SecretKey, cfg.TokenTTL),
		subs:     NewSubscriptionService(),
		validate: newValidator(),
		metrics:  newHTTPMetrics(reg),
		gatherer: reg,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.metrics.middleware,
		s.requestLog,
	)

	r.Get("/", s.handleRoot)
	r.Handle("/metrics", metrics.Handler(s.gatherer))

	r.Route(common.APIPrefix, func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Route("/subscriptions", func(r chi.Router) {
			r.Use(s.requireUser)
			r.Get("/", s.handleListSubscriptions)
			r.Post("/", s.handleCreateSubscription)
			r.Put("/{id}", s.handleUpdateSubscription)
			r.Delete("/{id}", s.handleDeleteSubscription)
		})
	})

	return r
}

// Run serves on cfg.Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.log.Info(ctx, "shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
