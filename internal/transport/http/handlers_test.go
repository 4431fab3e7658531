package httptransport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mamacare/internal/messaging"
)

type fakeGateway struct {
	saved []messaging.InboundMessage
	err   error
}

func (f *fakeGateway) SaveInbound(_ context.Context, msg messaging.InboundMessage) (*messaging.InboundResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, msg)
	return &messaging.InboundResult{ID: int64(len(f.saved))}, nil
}

func newTestRouter(gw *fakeGateway) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(NewHandler(logger, gw, nil), "")
}

func TestHandleInbound_SavesMessage(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw)

	body := `{
		"message_id": "msg-1",
		"content": "1",
		"to_addr": "*120*1234#",
		"from_addr": "+2340000000001",
		"transport_name": "ussd_transport",
		"transport_type": "ussd"
	}`
	req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, gw.saved, 1)
	assert.Equal(t, "msg-1", gw.saved[0].MessageID)
	assert.Equal(t, "+2340000000001", gw.saved[0].FromAddr)

	var result messaging.InboundResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, int64(1), result.ID)
}

func TestHandleInbound_AssignsMessageID(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw)

	body := `{"content":"hi","from_addr":"+2340000000001"}`
	req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, gw.saved, 1)
	assert.NotEmpty(t, gw.saved[0].MessageID)
}

func TestHandleInbound_RejectsInvalidJSON(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, gw.saved)
}

func TestHandleInbound_RequiresFromAddr(t *testing.T) {
	gw := &fakeGateway{}
	router := newTestRouter(gw)

	req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(`{"content":"hi"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, gw.saved)
}

func TestHandleInbound_GatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("gateway down")}
	router := newTestRouter(gw)

	body := `{"content":"hi","from_addr":"+2340000000001"}`
	req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleHealth_NoRedisConfigured(t *testing.T) {
	router := newTestRouter(&fakeGateway{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
}

func TestHandleInbound_TokenGuard(t *testing.T) {
	gw := &fakeGateway{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	router := NewRouter(NewHandler(logger, gw, nil), "callback_key")

	body := `{"content":"hi","from_addr":"+2340000000001"}`

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, gw.saved)
	})

	t.Run("wrong token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(body))
		req.Header.Set("Authorization", "Token wrong_key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/inbound", strings.NewReader(body))
		req.Header.Set("Authorization", "Token callback_key")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Len(t, gw.saved, 1)
	})

	// Health stays open regardless of the callback token.
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpointExposed(t *testing.T) {
	router := newTestRouter(&fakeGateway{})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
