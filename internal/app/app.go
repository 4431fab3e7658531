// Package app composes the five registry clients and the session controller
// into the single dependency set the conversational engine consumes.
package app

import (
	"log/slog"

	"mamacare/internal/hub"
	"mamacare/internal/identity"
	"mamacare/internal/messaging"
	"mamacare/internal/platform/config"
	"mamacare/internal/platform/metrics"
	"mamacare/internal/rating"
	"mamacare/internal/registry"
	"mamacare/internal/session"
	"mamacare/internal/subscription"
)

// App bundles everything a conversational state needs to act on a turn.
type App struct {
	Identity      *identity.Service
	Hub           *hub.Service
	Subscriptions *subscription.Service
	Gateway       *messaging.Service
	Ratings       *rating.Service

	Sessions *session.Controller
	Store    session.Store
}

// New wires the registry clients over one shared transport. Each registry
// gets its own client instance carrying its base URL and token.
func New(cfg config.Config, transport registry.Transport, store session.Store, logger *slog.Logger, m *metrics.Metrics) *App {
	client := func(name string, rc config.RegistryConfig) *registry.Client {
		return registry.NewClient(name, rc.BaseURL, rc.Token, transport, logger, m)
	}

	return &App{
		Identity:      identity.New(client("identity-store", cfg.IdentityStore)),
		Hub:           hub.New(client("hub", cfg.Hub)),
		Subscriptions: subscription.New(client("staged-messaging", cfg.StagedMessaging)),
		Gateway:       messaging.New(client("message-sender", cfg.MessageSender)),
		Ratings:       rating.New(client("service-rating", cfg.ServiceRating)),
		Sessions:      session.NewController(cfg.Session, m),
		Store:         store,
	}
}
