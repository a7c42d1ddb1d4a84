package devserver

import (
	"context"
	"sort"
	"sync"
)

// Subscription is the stored record. NextPaymentDate is "YYYY-MM-DD".
type Subscription struct {
	ID              int      `json:"id"`
	UserID          int      `json:"-"`
	Name            string   `json:"name"`
	Provider        *string  `json:"provider"`
	Amount          *float64 `json:"amount"`
	Currency        string   `json:"currency"`
	BillingCycle    string   `json:"billing_cycle"`
	NextPaymentDate *string  `json:"next_payment_date"`
	AutoDetected    bool     `json:"auto_detected"`
	IsActive        bool     `json:"is_active"`
	Notes           *string  `json:"notes"`
}

// SubscriptionService is an in-memory subscription table keyed by owner.
type SubscriptionService struct {
	mu     sync.RWMutex
	byID   map[int]*Subscription
	nextID int
}

func NewSubscriptionService() *SubscriptionService {
	return &SubscriptionService{byID: make(map[int]*Subscription), nextID: 1}
}

// List returns the user's subscriptions ordered by next payment date, with
// undated ones first and ties broken by id.
func (s *SubscriptionService) List(ctx context.Context, userID int) []Subscription {
	s.mu.RLock()
	out := make([]Subscription, 0)
	for _, sub := range s.byID {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].NextPaymentDate, out[j].NextPaymentDate
		switch {
		case a == nil && b == nil:
			return out[i].ID < out[j].ID
		case a == nil:
			return true
		case b == nil:
			return false
		case *a != *b:
			return *a < *b
		default:
			return out[i].ID < out[j].ID
		}
	})

	return out
}

// Create stores sub for userID and returns it with its new id.
func (s *SubscriptionService) Create(ctx context.Context, userID int, sub Subscription) Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub.ID = s.nextID
	sub.UserID = userID
	s.nextID++

	stored := sub
	s.byID[sub.ID] = &stored
	return sub
}

// Update applies fn to the user's subscription id.
func (s *SubscriptionService) Update(ctx context.Context, userID int, id int, fn func(*Subscription)) (Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.byID[id]
	if !ok || sub.UserID != userID {
		return Subscription{}, ErrNotFound
	}
	fn(sub)
	sub.ID, sub.UserID = id, userID
	return *sub, nil
}

func (s *SubscriptionService) Delete(ctx context.Context, userID int, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.byID[id]
	if !ok || sub.UserID != userID {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}
