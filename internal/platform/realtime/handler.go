package realtime

import (
	"net/http"

	"github.com/google/uuid"
	gorillawebsocket "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Handler upgrades HTTP connections to WebSocket and feeds inbound frames
// into the gateway.
type Handler struct {
	gateway  *Gateway
	upgrader gorillawebsocket.Upgrader
}

// NewHandler creates a handler bound to the given gateway. allowedOrigins
// restricts the upgrade handshake; an empty list allows any origin
// (development).
func NewHandler(gateway *Gateway, allowedOrigins []string) *Handler {
	return &Handler{
		gateway: gateway,
		upgrader: gorillawebsocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if len(allowedOrigins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				for _, allowed := range allowedOrigins {
					if origin == allowed {
						return true
					}
				}
				return false
			},
		},
	}
}

// RegisterRoutes registers the WebSocket endpoint on the provided Echo group.
func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/ws", h.HandleConnect)
}

// HandleConnect upgrades the connection, registers the client with the hub,
// and starts the read/write pumps.
func (h *Handler) HandleConnect(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := NewClient(uuid.New().String(), &gorillaConnAdapter{ws})
	h.gateway.Hub().Register(client)

	go h.writePump(client)
	go h.readPump(client)

	return nil
}

// readPump reads frames from the connection and dispatches them until the
// connection drops; the hub unregister on exit releases every room
// membership the client held.
func (h *Handler) readPump(client *Client) {
	defer func() {
		h.gateway.Hub().Unregister(client)
		client.conn.Close()
	}()

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			break
		}
		h.gateway.HandleMessage(client, message)
	}
}

// writePump writes queued frames to the connection.
func (h *Handler) writePump(client *Client) {
	defer client.conn.Close()

	for message := range client.Send {
		if err := client.conn.WriteMessage(gorillawebsocket.TextMessage, message); err != nil {
			break
		}
	}
}

// gorillaConnAdapter wraps a gorilla/websocket.Conn to satisfy the Conn interface.
type gorillaConnAdapter struct {
	conn *gorillawebsocket.Conn
}

func (a *gorillaConnAdapter) ReadMessage() (int, []byte, error) {
	return a.conn.ReadMessage()
}

func (a *gorillaConnAdapter) WriteMessage(messageType int, data []byte) error {
	return a.conn.WriteMessage(messageType, data)
}

func (a *gorillaConnAdapter) Close() error {
	return a.conn.Close()
}
