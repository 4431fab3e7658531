// Package hub is the client for the registration hub: registrations and
// stage-transition change records.
package hub

import (
	"context"
	"fmt"
	"time"

	"mamacare/internal/registry"
)

// Registration as owned by the hub.
type Registration struct {
	ID        string            `json:"id"`
	Stage     string            `json:"stage"`
	MotherID  string            `json:"mother_id"`
	Data      map[string]string `json:"data"`
	Validated bool              `json:"validated"`
	Source    string            `json:"source,omitempty"`
	CreatedBy string            `json:"created_by,omitempty"`
	UpdatedBy string            `json:"updated_by,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitzero"`
	UpdatedAt time.Time         `json:"updated_at,omitzero"`
}

// RegistrationRequest creates a registration record.
type RegistrationRequest struct {
	Stage    string            `json:"stage"`
	MotherID string            `json:"mother_id"`
	Data     map[string]string `json:"data"`
}

// ChangeRequest records a stage transition against an existing registration.
type ChangeRequest struct {
	Stage    string `json:"stage,omitempty"`
	MotherID string `json:"mother_id"`
	Action   string `json:"action,omitempty"`
}

// ChangeResult is the hub's acknowledgement of a change record.
type ChangeResult struct {
	ID string `json:"id"`
}

// Service wraps one registry client configured for the hub.
type Service struct {
	client *registry.Client
}

func New(client *registry.Client) *Service {
	return &Service{client: client}
}

// CreateRegistration records a new registration.
func (s *Service) CreateRegistration(ctx context.Context, req RegistrationRequest) (*Registration, error) {
	if req.MotherID == "" {
		return nil, fmt.Errorf("registration: mother_id is required")
	}
	var out Registration
	if err := s.client.Create(ctx, "registrations/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateChange records a stage-transition request. Same backend as
// registrations, distinct endpoint.
func (s *Service) CreateChange(ctx context.Context, req ChangeRequest) (*ChangeResult, error) {
	if req.MotherID == "" {
		return nil, fmt.Errorf("change: mother_id is required")
	}
	var out ChangeResult
	if err := s.client.Update(ctx, "change/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
