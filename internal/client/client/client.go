package client

import (
	"context"

	"github.com/dmitrijs2005/udlm/internal/client/models"
)

// Client is the transport contract the session and subscription services
// depend on. Tokens are passed per call; implementations hold no session.
type Client interface {
	Login(ctx context.Context, username string, password string) (string, error)
	Register(ctx context.Context, email string, password string, fullName string) error
	ListSubscriptions(ctx context.Context, token string) ([]models.Subscription, error)
	CreateSubscription(ctx context.Context, token string, sub models.NewSubscription) (models.Subscription, error)
	Ping(ctx context.Context) error
}
