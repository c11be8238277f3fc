package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pratik-mahalle/cloudspend/internal/api/middleware"
	"github.com/pratik-mahalle/cloudspend/internal/notify"
	"github.com/pratik-mahalle/cloudspend/internal/pkg/logger"
)

const writeTimeout = 10 * time.Second

// WebSocketHandler bridges hub subscriptions onto websocket connections.
// Each connection gets its own subscriber; messages the engine publishes for
// the caller's tenant are forwarded as JSON frames.
type WebSocketHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

// NewWebSocketHandler creates a new websocket handler
func NewWebSocketHandler(hub *notify.Hub, log *logger.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin enforcement happens in the CORS layer.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log,
	}
}

// Serve upgrades the connection and streams the tenant's alerts until the
// client goes away
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorWithErr(err, "WebSocket upgrade failed")
		return
	}

	sub := h.hub.Subscribe(claims.TenantID)
	defer sub.Close()
	defer conn.Close()

	h.logger.WithFields(map[string]interface{}{
		"tenant_id": claims.TenantID,
	}).Info("WebSocket client connected")

	done := make(chan struct{})

	// Read loop exists only to detect the client closing the connection.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-sub.C():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.WithFields(map[string]interface{}{
					"tenant_id": claims.TenantID,
				}).Debug("WebSocket write failed, dropping client")
				return
			}
		case <-done:
			return
		case <-r.Context().Done():
			return
		}
	}
}
