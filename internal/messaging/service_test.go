package messaging_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mamacare/internal/messaging"
	"mamacare/internal/registry"
	"mamacare/internal/registry/mocks"
)

const identityID = "cb245673-aa41-4302-ac47-00000000001"

func newService(t *testing.T) (*messaging.Service, *mocks.MockTransport) {
	t.Helper()
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockTransport(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := registry.NewClient("message-sender", "http://ms.localhost:8006/api/v1", "test_key", transport, logger, nil)
	return messaging.New(client), transport
}

func TestSaveInbound(t *testing.T) {
	svc, transport := newService(t)

	msg := messaging.InboundMessage{
		MessageID:     "msg-1",
		Content:       "1",
		ToAddr:        "*120*1234#",
		FromAddr:      "+2340000000001",
		TransportName: "ussd_transport",
		TransportType: "ussd",
	}

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req registry.Request) (*registry.Response, error) {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "http://ms.localhost:8006/api/v1/inbound/", req.URL)

			var payload map[string]any
			require.NoError(t, json.Unmarshal(req.Body, &payload))
			assert.Equal(t, "msg-1", payload["message_id"])
			// Absent helper metadata is stored as an empty object, not null.
			assert.Equal(t, map[string]any{}, payload["helper_metadata"])
			assert.Nil(t, payload["in_reply_to"])

			return &registry.Response{Code: 201, Body: []byte(`{"id":7}`)}, nil
		})

	result, err := svc.SaveInbound(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.ID)
}

func TestSaveInbound_RequiresMessageID(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.SaveInbound(context.Background(), messaging.InboundMessage{Content: "1"})
	assert.Error(t, err)
}

func TestCreateOutbound(t *testing.T) {
	svc, transport := newService(t)

	metadata := map[string]any{"voice_speech_url": "https://example.com/audio.mp3"}

	transport.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req registry.Request) (*registry.Response, error) {
			assert.Equal(t, "http://ms.localhost:8006/api/v1/outbound/", req.URL)

			var payload messaging.OutboundMessage
			require.NoError(t, json.Unmarshal(req.Body, &payload))
			assert.Equal(t, identityID, payload.ToIdentity)
			assert.Equal(t, "+2340000000001", payload.ToAddr)
			assert.Equal(t, "Welcome back", payload.Content)
			assert.Equal(t, metadata, payload.Metadata)

			body, _ := json.Marshal(messaging.OutboundMessage{ID: "out-1", ToIdentity: identityID})
			return &registry.Response{Code: 201, Body: body}, nil
		})

	out, err := svc.CreateOutbound(context.Background(), identityID, "+2340000000001", "Welcome back", metadata)
	require.NoError(t, err)
	assert.Equal(t, "out-1", out.ID)
}

func TestCreateOutbound_RequiresIdentityAndAddress(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.CreateOutbound(context.Background(), "", "+2340000000001", "hi", nil)
	assert.Error(t, err)
	_, err = svc.CreateOutbound(context.Background(), identityID, "", "hi", nil)
	assert.Error(t, err)
}
