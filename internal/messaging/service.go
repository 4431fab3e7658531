// Package messaging is the client for the message delivery gateway: inbound
// message capture and outbound dispatch.
package messaging

import (
	"context"
	"fmt"

	"mamacare/internal/registry"
)

// InboundMessage is the delivery-channel envelope for a received message.
type InboundMessage struct {
	MessageID      string         `json:"message_id"`
	Content        string         `json:"content"`
	InReplyTo      *string        `json:"in_reply_to"`
	ToAddr         string         `json:"to_addr"`
	FromAddr       string         `json:"from_addr"`
	TransportName  string         `json:"transport_name"`
	TransportType  string         `json:"transport_type"`
	HelperMetadata map[string]any `json:"helper_metadata"`
}

// InboundResult is the gateway's acknowledgement of a captured message.
type InboundResult struct {
	ID int64 `json:"id"`
}

// OutboundMessage is a dispatch request and its echo from the gateway.
type OutboundMessage struct {
	ID         string         `json:"id,omitempty"`
	ToIdentity string         `json:"to_identity"`
	ToAddr     string         `json:"to_addr"`
	Content    string         `json:"content"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Service wraps one registry client configured for the message gateway.
type Service struct {
	client *registry.Client
}

func New(client *registry.Client) *Service {
	return &Service{client: client}
}

// SaveInbound captures a received message.
func (s *Service) SaveInbound(ctx context.Context, msg InboundMessage) (*InboundResult, error) {
	if msg.MessageID == "" {
		return nil, fmt.Errorf("inbound: message_id is required")
	}
	if msg.HelperMetadata == nil {
		msg.HelperMetadata = map[string]any{}
	}
	var out InboundResult
	if err := s.client.Create(ctx, "inbound/", msg, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOutbound dispatches a message to an identity's address. metadata may
// be nil; per-message flags pass through verbatim.
func (s *Service) CreateOutbound(ctx context.Context, identityID, toAddr, content string, metadata map[string]any) (*OutboundMessage, error) {
	if identityID == "" || toAddr == "" {
		return nil, fmt.Errorf("outbound: identity and address are required")
	}
	req := OutboundMessage{
		ToIdentity: identityID,
		ToAddr:     toAddr,
		Content:    content,
		Metadata:   metadata,
	}
	var out OutboundMessage
	if err := s.client.Create(ctx, "outbound/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
