package realtime

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(*http.Request) bool {
		// Browser origin checks add nothing here; identity comes from the
		// resolved user header, not the Origin.
		return true
	},
}

// clientFrame is what subscribers send upstream to manage room membership.
type clientFrame struct {
	Action  string `json:"action"`
	OrderID string `json:"order_id,omitempty"`
}

// Handler upgrades websocket connections and wires them into the hub.
type Handler struct {
	hub    *Hub
	logger *slog.Logger
}

// NewHandler creates the websocket ingress handler.
func NewHandler(hub *Hub, logger *slog.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: logger.With("component", "realtime.handler"),
	}
}

// Serve handles GET /ws. The caller's identity arrives in the X-User-ID
// header, resolved by the fronting auth layer. Every connection starts
// subscribed to its own notifications room.
func (h *Handler) Serve(ctx echo.Context) error {
	userID := ctx.Request().Header.Get("X-User-ID")
	if userID == "" {
		userID = ctx.QueryParam("user_id")
	}
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "user identity is required")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// Upgrade already wrote the failure response.
		return nil
	}

	client := NewClient(userID, conn)
	h.hub.Register(client)
	h.hub.Join(client, NotificationsRoom(userID))

	h.logger.Info("client connected", "user_id", userID)

	go client.writePump()
	go h.readPump(client)

	return nil
}

// readPump consumes membership frames until the connection dies, then
// unregisters the client.
func (h *Handler) readPump(client *Client) {
	defer func() {
		h.hub.Unregister(client)
		client.conn.Close()
		h.logger.Info("client disconnected", "user_id", client.userID)
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			return
		}

		var frame clientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.logger.Warn("ignoring malformed frame", "user_id", client.userID, "error", err)
			continue
		}

		h.apply(client, frame)
	}
}

func (h *Handler) apply(client *Client, frame clientFrame) {
	switch frame.Action {
	case "join-notifications":
		h.hub.Join(client, NotificationsRoom(client.userID))
	case "join-conversation":
		h.hub.Join(client, ConversationRoom(client.userID))
	case "join-order":
		if frame.OrderID != "" {
			h.hub.Join(client, OrderRoom(frame.OrderID))
		}
	case "leave-order":
		if frame.OrderID != "" {
			h.hub.Leave(client, OrderRoom(frame.OrderID))
		}
	default:
		h.logger.Warn("ignoring unknown action", "action", frame.Action, "user_id", client.userID)
	}
}
