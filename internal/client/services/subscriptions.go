package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/udlm/internal/client/client"
	"github.com/dmitrijs2005/udlm/internal/client/models"
	"github.com/dmitrijs2005/udlm/internal/logging"
)

// SubscriptionStore keeps the subscription collection of the current session
// in sync with the API and owns the draft form used to create new records.
//
// The token is always supplied by the caller; the store never reads session
// state. Clear starts a new generation: responses to requests issued before
// it are dropped and reported as ErrStaleSession.
type SubscriptionStore struct {
	client   client.Client
	log      logging.Logger
	currency string

	mu         sync.Mutex
	subs       []models.Subscription
	draft      models.Draft
	loading    int
	saving     int
	errMsg     string
	generation uint64
}

// NewSubscriptionStore returns an empty store. An empty currency means
// models.DefaultCurrency.
func NewSubscriptionStore(c client.Client, log logging.Logger, currency string) *SubscriptionStore {
	if currency == "" {
		currency = models.DefaultCurrency
	}
	return &SubscriptionStore{
		client:   c,
		log:      log.With("component", "subscriptions"),
		currency: currency,
		subs:     []models.Subscription{},
		draft:    models.EmptyDraft(),
	}
}

// begin marks one more request in flight on counter and clears the error.
func (s *SubscriptionStore) begin(counter *int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	*counter++
	s.errMsg = ""
	return s.generation
}

// end releases what begin took, unless Clear already reset the counters.
func (s *SubscriptionStore) end(gen uint64, counter *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation && *counter > 0 {
		*counter--
	}
}

// Refresh replaces the collection with the server's list. On failure the
// collection is left as it was and Error reports what went wrong.
func (s *SubscriptionStore) Refresh(ctx context.Context, token string) error {
	if token == "" {
		return ErrNotAuthenticated
	}

	gen := s.begin(&s.loading)
	defer s.end(gen, &s.loading)

	subs, err := s.client.ListSubscriptions(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug(ctx, "dropping stale subscriptions response")
		return ErrStaleSession
	}
	if err != nil {
		s.errMsg = messageFor(err, MsgLoadFailed)
		s.log.Warn(ctx, "loading subscriptions failed", logging.Err(err))
		return fmt.Errorf("refresh subscriptions: %w", err)
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	s.subs = subs
	s.log.Debug(ctx, "subscriptions loaded", "count", len(subs))
	return nil
}

// Create validates draft, sends it and appends the server's record. On
// success the store's draft is reset; on failure it is left untouched so the
// user can retry.
func (s *SubscriptionStore) Create(ctx context.Context, token string, draft models.Draft) (models.Subscription, error) {
	if err := draft.Validate(); err != nil {
		s.mu.Lock()
		s.errMsg = MsgNameRequired
		s.mu.Unlock()
		return models.Subscription{}, err
	}
	if token == "" {
		return models.Subscription{}, ErrNotAuthenticated
	}

	gen := s.begin(&s.saving)
	defer s.end(gen, &s.saving)

	created, err := s.client.CreateSubscription(ctx, token, draft.ToNewSubscription(s.currency))

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.log.Debug(ctx, "dropping stale create response")
		return models.Subscription{}, ErrStaleSession
	}
	if err != nil {
		s.errMsg = messageFor(err, MsgCreateFailed)
		s.log.Warn(ctx, "creating subscription failed", logging.Err(err))
		return models.Subscription{}, fmt.Errorf("create subscription: %w", err)
	}

	s.subs = append(s.subs, created)
	s.draft = models.EmptyDraft()
	s.log.Info(ctx, "subscription created", "id", string(created.ID))
	return created, nil
}

// SubmitDraft creates a subscription from the store's own draft.
func (s *SubscriptionStore) SubmitDraft(ctx context.Context, token string) (models.Subscription, error) {
	return s.Create(ctx, token, s.Draft())
}

// Clear empties the collection and resets flags and error. Requests still in
// flight will not touch the store when they complete.
func (s *SubscriptionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = []models.Subscription{}
	s.loading = 0
	s.saving = 0
	s.errMsg = ""
	s.generation++
}

// Subscriptions returns a copy of the collection in insertion order.
func (s *SubscriptionStore) Subscriptions() []models.Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Subscription, len(s.subs))
	copy(out, s.subs)
	return out
}

// TotalMonthly is recomputed from the collection on every call.
func (s *SubscriptionStore) TotalMonthly() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.TotalMonthly(s.subs)
}

func (s *SubscriptionStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading > 0
}

func (s *SubscriptionStore) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saving > 0
}

// Error is the message of the last failed refresh or create, or "".
func (s *SubscriptionStore) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *SubscriptionStore) Currency() string {
	return s.currency
}

// Draft setters.

func (s *SubscriptionStore) Draft() models.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

func (s *SubscriptionStore) SetDraftName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Name = name
}

func (s *SubscriptionStore) SetDraftProvider(provider string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Provider = provider
}

func (s *SubscriptionStore) SetDraftAmount(amount string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Amount = amount
}

// SetDraftBillingCycle accepts "monthly" or "yearly".
func (s *SubscriptionStore) SetDraftBillingCycle(cycle string) error {
	c, err := models.ParseBillingCycle(cycle)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.BillingCycle = c
	return nil
}

func (s *SubscriptionStore) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = models.EmptyDraft()
}

// IsStale reports whether err means the result was dropped after Clear.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleSession)
}
