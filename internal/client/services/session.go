// Package services contains the client-side state managers of UDLM: the
// SessionManager, which owns credentials and the bearer token, and the
// SubscriptionStore, which owns the subscription collection of a session.
// Presentation code reads their state and calls their operations; it holds
// no business logic of its own.
package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/udlm/internal/client/client"
	"github.com/dmitrijs2005/udlm/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// State is the authentication state of a SessionManager.
type State int

const (
	StateLoggedOut State = iota
	StateAuthenticating
	StateLoggedIn
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged out"
	case StateAuthenticating:
		return "authenticating"
	case StateLoggedIn:
		return "logged in"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SubscriptionSyncer is the part of SubscriptionStore the session drives.
type SubscriptionSyncer interface {
	Refresh(ctx context.Context, token string) error
	Clear()
}

// Identity is what the client can learn from a JWT access token without
// verifying it. It is informational only; the server remains the authority.
type Identity struct {
	Subject   string
	ExpiresAt time.Time
}

// SessionManager runs the LoggedOut → Authenticating → LoggedIn|LoggedOut
// state machine and holds the token. StatusMessage and ErrorMessage carry
// the outcome of the last attempt; at most one of them is non-empty.
//
// Logout starts a new epoch. A login that was in flight when Logout ran
// does not log the user back in.
type SessionManager struct {
	client client.Client
	subs   SubscriptionSyncer
	log    logging.Logger

	mu     sync.Mutex
	state  State
	token  string
	status string
	errMsg string
	epoch  uint64
}

func NewSessionManager(c client.Client, subs SubscriptionSyncer, log logging.Logger) *SessionManager {
	return &SessionManager{
		client: c,
		subs:   subs,
		log:    log.With("component", "session"),
	}
}

// begin enters Authenticating and clears both messages.
func (s *SessionManager) begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateLoggedIn {
		return 0, ErrAlreadyLoggedIn
	}
	s.state = StateAuthenticating
	s.status = ""
	s.errMsg = ""
	return s.epoch, nil
}

// fail returns to LoggedOut with msg, unless Logout ran in the meantime.
func (s *SessionManager) fail(epoch uint64, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.state = StateLoggedOut
	s.token = ""
	s.status = ""
	s.errMsg = msg
}

// Login exchanges email and password for a token. On success the session is
// LoggedIn and the subscription store is refreshed with the new token; a
// failed refresh is reported by the store and does not fail the login.
func (s *SessionManager) Login(ctx context.Context, email string, password string) error {
	epoch, err := s.begin()
	if err != nil {
		return err
	}

	token, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.fail(epoch, messageFor(err, MsgLoginFailed))
		s.log.Info(ctx, "login failed", logging.Err(err))
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		s.log.Debug(ctx, "dropping login response after logout")
		return ErrStaleSession
	}
	s.state = StateLoggedIn
	s.token = token
	s.status = MsgLoggedIn
	s.errMsg = ""
	s.mu.Unlock()

	s.log.Info(ctx, "logged in")

	if err := s.subs.Refresh(ctx, token); err != nil {
		s.log.Debug(ctx, "initial subscriptions refresh failed", logging.Err(err))
	}
	return nil
}

// Register creates an account and, only if that succeeds, logs in with the
// same credentials. The returned error and the messages left behind are
// those of the last step that ran.
func (s *SessionManager) Register(ctx context.Context, email string, password string) error {
	epoch, err := s.begin()
	if err != nil {
		return err
	}

	if err := s.client.Register(ctx, email, password, DefaultFullName); err != nil {
		s.fail(epoch, messageFor(err, MsgRegistrationFailed))
		s.log.Info(ctx, "registration failed", logging.Err(err))
		return fmt.Errorf("register: %w", err)
	}

	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return ErrStaleSession
	}
	s.status = MsgAccountCreated
	s.mu.Unlock()

	s.log.Info(ctx, "account created")

	return s.Login(ctx, email, password)
}

// Logout always succeeds: it forgets the token, clears the messages and
// empties the subscription store.
func (s *SessionManager) Logout() {
	s.mu.Lock()
	s.state = StateLoggedOut
	s.token = ""
	s.status = ""
	s.errMsg = ""
	s.epoch++
	s.mu.Unlock()

	s.subs.Clear()
}

func (s *SessionManager) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *SessionManager) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *SessionManager) IsLoggedIn() bool {
	return s.State() == StateLoggedIn
}

func (s *SessionManager) StatusMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *SessionManager) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Identity decodes the current token's subject and expiry without checking
// its signature. ok is false when logged out or when the token is opaque.
func (s *SessionManager) Identity() (Identity, bool) {
	token := s.Token()
	if token == "" {
		return Identity{}, false
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}, false
	}

	id := Identity{Subject: claims.Subject}
	if claims.ExpiresAt != nil {
		id.ExpiresAt = claims.ExpiresAt.Time
	}
	return id, true
}
