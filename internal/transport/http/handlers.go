package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"mamacare/internal/messaging"
	platformredis "mamacare/internal/platform/redis"
)

// Gateway is the slice of the message gateway the inbound callback needs.
type Gateway interface {
	SaveInbound(ctx context.Context, msg messaging.InboundMessage) (*messaging.InboundResult, error)
}

// Handler is the thin HTTP layer. It delegates to the gateway client without
// embedding business logic so transport concerns remain isolated.
type Handler struct {
	logger  *slog.Logger
	gateway Gateway
	redis   *platformredis.Client
}

// NewHandler creates the HTTP handler. redis may be nil when no session
// store is configured.
func NewHandler(logger *slog.Logger, gateway Gateway, redis *platformredis.Client) *Handler {
	return &Handler{logger: logger, gateway: gateway, redis: redis}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if h.redis != nil {
		if err := h.redis.Health(r.Context()); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		status["redis"] = "ok"
	}
	writeJSON(w, http.StatusOK, status)
}

// handleInbound accepts the delivery channel's message callback and stores it
// through the message gateway.
func (h *Handler) handleInbound(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var msg messaging.InboundMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.logger.WarnContext(ctx, "invalid inbound payload", "error", err.Error())
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if msg.FromAddr == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from_addr is required"})
		return
	}
	// Channels that don't supply a message id get one assigned here so the
	// gateway record stays addressable.
	if msg.MessageID == "" {
		msg.MessageID = uuid.New().String()
	}

	result, err := h.gateway.SaveInbound(ctx, msg)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to save inbound message",
			"message_id", msg.MessageID,
			"error", err.Error(),
		)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "message gateway unavailable"})
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
