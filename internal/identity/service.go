// Package identity is the client for the identity registry: address search,
// identity resolution, updates and consent-state changes.
package identity

import (
	"context"
	"fmt"
	"net/url"

	"mamacare/internal/registry"
)

// Service wraps one registry client configured for the identity store.
type Service struct {
	client *registry.Client
}

func New(client *registry.Client) *Service {
	return &Service{client: client}
}

// SearchByAddress lists identities holding the given address. An empty slice
// is a normal outcome feeding the get-or-create decision, not an error.
func (s *Service) SearchByAddress(ctx context.Context, addrType, addrValue string) ([]Identity, error) {
	if addrType == "" || addrValue == "" {
		return nil, fmt.Errorf("identity search: address type and value are required")
	}
	params := url.Values{}
	params.Set("details__addresses__"+addrType, addrValue)

	page, err := registry.List[Identity](ctx, s.client, "identities/search/", params)
	if err != nil {
		return nil, err
	}
	return page.Results, nil
}

// GetByID fetches one identity. Missing identities surface as an error
// matching registry.ErrNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Identity, error) {
	var out Identity
	if err := s.client.Get(ctx, "identities/"+id+"/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByAddress resolves an address to the first matching identity, or nil
// when the registry holds none. The registry's result ordering is kept as-is.
func (s *Service) GetByAddress(ctx context.Context, addrType, addrValue string) (*Identity, error) {
	results, err := s.SearchByAddress(ctx, addrType, addrValue)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0], nil
}

// Create registers a new identity for the address. Unless opts supplies a
// richer details object, the address becomes the sole entry with its type as
// the default address type.
func (s *Service) Create(ctx context.Context, addrType, addrValue string, opts *CreateOptions) (*Identity, error) {
	if addrType == "" || addrValue == "" {
		return nil, fmt.Errorf("identity create: address type and value are required")
	}

	details := Details{
		DefaultAddrType: addrType,
		Addresses: map[string]map[string]AddressMeta{
			addrType: {addrValue: {}},
		},
	}
	req := createRequest{Details: details}
	if opts != nil {
		if opts.Details != nil {
			req.Details = *opts.Details
		}
		req.Operator = opts.OperatorID
		req.CommunicateThrough = opts.CommunicateThroughID
	}

	var out Identity
	if err := s.client.Create(ctx, "identities/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetOrCreate resolves an address to an identity, creating one only after a
// search found nothing. The search-then-create ordering minimizes duplicate
// creation when concurrent sessions race on the same address; without a
// server-side uniqueness constraint the race cannot be closed here, and no
// cross-session lock is attempted.
func (s *Service) GetOrCreate(ctx context.Context, addrType, addrValue string, opts *CreateOptions) (*Identity, error) {
	found, err := s.GetByAddress(ctx, addrType, addrValue)
	if err != nil {
		return nil, err
	}
	if found != nil {
		return found, nil
	}
	return s.Create(ctx, addrType, addrValue, opts)
}

// Update patches an identity's details.
func (s *Service) Update(ctx context.Context, id string, details Details) (*Identity, error) {
	if id == "" {
		return nil, fmt.Errorf("identity update: id is required")
	}
	var out Identity
	if err := s.client.Update(ctx, "identities/"+id+"/", updateRequest{ID: id, Details: details}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OptOut records a consent withdrawal against an identity's address. No
// local state changes; the registry acknowledgement is returned as-is.
func (s *Service) OptOut(ctx context.Context, req OptOutRequest) (*OptOutResult, error) {
	if req.Identity == "" || req.Address == "" {
		return nil, fmt.Errorf("optout: identity and address are required")
	}
	var out OptOutResult
	if err := s.client.Create(ctx, "optout/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OptIn re-registers consent for an identity's address.
func (s *Service) OptIn(ctx context.Context, identityID, addrType, addrValue string) (*OptInResult, error) {
	if identityID == "" || addrValue == "" {
		return nil, fmt.Errorf("optin: identity and address are required")
	}
	req := optInRequest{Identity: identityID, AddressType: addrType, Address: addrValue}
	var out OptInResult
	if err := s.client.Create(ctx, "optin/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
