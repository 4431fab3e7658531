package identity

import "time"

// AddressMeta is the per-address metadata object. Only the default marker is
// meaningful to this layer; the registry may store more.
type AddressMeta struct {
	Default bool `json:"default,omitempty"`
}

// Details is the identity details envelope: address-type to address-value to
// metadata, with at most one address-type marked as default.
type Details struct {
	DefaultAddrType string                            `json:"default_addr_type,omitempty"`
	Addresses       map[string]map[string]AddressMeta `json:"addresses,omitempty"`
}

// Identity as owned by the identity registry. ID and Version are assigned
// server-side; ID is immutable once assigned. Address values are unique per
// address-type across the registry, but only the server enforces that, which
// is why resolution always searches before creating.
type Identity struct {
	ID                 string    `json:"id"`
	Version            int       `json:"version,omitempty"`
	Details            Details   `json:"details"`
	Operator           string    `json:"operator,omitempty"`
	CommunicateThrough string    `json:"communicate_through,omitempty"`
	CreatedAt          time.Time `json:"created_at,omitzero"`
	UpdatedAt          time.Time `json:"updated_at,omitzero"`
}

// CreateOptions carries the optional references attached on creation.
// Details, when set, replaces the single-address envelope built from the
// supplied address.
type CreateOptions struct {
	OperatorID           string
	CommunicateThroughID string
	Details              *Details
}

// OptOutRequest is the full opt-out payload; every field passes through to
// the registry verbatim.
type OptOutRequest struct {
	OptOutType        string `json:"optout_type"`
	Identity          string `json:"identity"`
	Reason            string `json:"reason"`
	AddressType       string `json:"address_type"`
	Address           string `json:"address"`
	RequestSource     string `json:"request_source"`
	RequestorSourceID string `json:"requestor_source_id"`
}

// OptOutResult is the registry's acknowledgement of an opt-out.
type OptOutResult struct {
	ID int64 `json:"id"`
}

// OptInResult is the registry's acknowledgement of an opt-in.
type OptInResult struct {
	Accepted bool `json:"accepted"`
}

type createRequest struct {
	Details            Details `json:"details"`
	Operator           string  `json:"operator,omitempty"`
	CommunicateThrough string  `json:"communicate_through,omitempty"`
}

type updateRequest struct {
	ID      string  `json:"id"`
	Details Details `json:"details"`
}

type optInRequest struct {
	Identity    string `json:"identity"`
	AddressType string `json:"address_type"`
	Address     string `json:"address"`
}
