// Package subscription is the client for the staged subscription messaging
// registry: subscriptions plus the messageset catalogue they progress
// through.
package subscription

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"mamacare/internal/registry"
)

// Service wraps one registry client configured for the staged messaging
// store.
type Service struct {
	client *registry.Client
}

func New(client *registry.Client) *Service {
	return &Service{client: client}
}

// ListActive returns the identity's active subscriptions. An empty page with
// count zero is a normal outcome for an unsubscribed identity.
func (s *Service) ListActive(ctx context.Context, identityID string) (*registry.Page[Subscription], error) {
	if identityID == "" {
		return nil, fmt.Errorf("subscription list: identity is required")
	}
	params := url.Values{}
	params.Set("identity", identityID)
	params.Set("active", "true")
	return registry.List[Subscription](ctx, s.client, "subscriptions/", params)
}

// GetActiveOne returns the identity's first active subscription, or nil when
// there is none.
func (s *Service) GetActiveOne(ctx context.Context, identityID string) (*Subscription, error) {
	page, err := s.ListActive(ctx, identityID)
	if err != nil {
		return nil, err
	}
	if len(page.Results) == 0 {
		return nil, nil
	}
	return &page.Results[0], nil
}

// HasActive reports whether the identity holds at least one active
// subscription.
func (s *Service) HasActive(ctx context.Context, identityID string) (bool, error) {
	page, err := s.ListActive(ctx, identityID)
	if err != nil {
		return false, err
	}
	return len(page.Results) > 0, nil
}

// Get fetches one subscription by id.
func (s *Service) Get(ctx context.Context, id string) (*Subscription, error) {
	var out Subscription
	if err := s.client.Get(ctx, "subscriptions/"+id+"/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update patches a subscription (sequence advance, completion, deactivation).
func (s *Service) Update(ctx context.Context, patch Patch) (*Subscription, error) {
	if patch.ID == "" {
		return nil, fmt.Errorf("subscription update: id is required")
	}
	var out Subscription
	if err := s.client.Update(ctx, "subscriptions/"+patch.ID+"/", patch, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetMessageset fetches one messageset by id.
func (s *Service) GetMessageset(ctx context.Context, id int) (*MessageSet, error) {
	var out MessageSet
	if err := s.client.Get(ctx, "messageset/"+strconv.Itoa(id)+"/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessagesets returns one page of the messageset catalogue.
func (s *Service) ListMessagesets(ctx context.Context) (*registry.Page[MessageSet], error) {
	return registry.List[MessageSet](ctx, s.client, "messageset/", nil)
}

// IsSubscribedTo reports whether the identity has an active subscription
// whose messageset carries the given short name. Both "no active
// subscriptions" and "none matching" are false, not errors. The two
// collections are paginated independently; only their first pages are
// consulted, mirroring the registry's page-size guarantees for these
// endpoints.
func (s *Service) IsSubscribedTo(ctx context.Context, identityID, shortName string) (bool, error) {
	subs, err := s.ListActive(ctx, identityID)
	if err != nil {
		return false, err
	}
	if len(subs.Results) == 0 {
		return false, nil
	}

	sets, err := s.ListMessagesets(ctx)
	if err != nil {
		return false, err
	}
	byID := make(map[int]string, len(sets.Results))
	for _, ms := range sets.Results {
		byID[ms.ID] = ms.ShortName
	}

	for _, sub := range subs.Results {
		if byID[sub.Messageset] == shortName {
			return true, nil
		}
	}
	return false, nil
}
