package astrosim

import (
	"net/http"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 5 * time.Second

// WebSocketFeed implements Renderer by broadcasting scene updates as JSON
// messages to every connected websocket client. It is the transport between
// the headless core and an external 3D renderer.
type WebSocketFeed struct {
	upgrader websocket.Upgrader
	logger   kitlog.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

// wsMessage is one feed message. Kind is "body", "position" or "visibility";
// only the fields of that kind are set.
type wsMessage struct {
	Kind     string    `json:"kind"`
	Body     string    `json:"body"`
	Position []float64 `json:"position,omitempty"` // AU
	RadiusKm float64   `json:"radius_km,omitempty"`
	Color    []float64 `json:"color,omitempty"`
	Visible  *bool     `json:"visible,omitempty"`
}

// NewWebSocketFeed returns an empty feed. Register it on an HTTP mux and pass
// it to the driver as a Renderer.
func NewWebSocketFeed(logger kitlog.Logger) *WebSocketFeed {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &WebSocketFeed{
		upgrader: websocket.Upgrader{
			// Renderers connect from file:// shells and dev servers alike.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:  kitlog.With(logger, "subsys", "wsfeed"),
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// ServeHTTP upgrades the connection and keeps it subscribed until it closes.
func (f *WebSocketFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !websocket.IsWebSocketUpgrade(r) {
		http.Error(w, "websocket upgrade required", http.StatusBadRequest)
		return
	}
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Log("level", "warning", "upgrade", err)
		return
	}
	f.mu.Lock()
	f.clients[conn] = struct{}{}
	clients := len(f.clients)
	f.mu.Unlock()
	f.logger.Log("level", "info", "status", "connected", "remote", conn.RemoteAddr().String(), "clients", clients)

	// Drain incoming frames so pings are answered and closes are noticed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				f.drop(conn)
				return
			}
		}
	}()
}

func (f *WebSocketFeed) drop(conn *websocket.Conn) {
	f.mu.Lock()
	delete(f.clients, conn)
	f.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected renderers.
func (f *WebSocketFeed) ClientCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

func (f *WebSocketFeed) broadcast(msg wsMessage) {
	f.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(f.clients))
	for conn := range f.clients {
		conns = append(conns, conn)
	}
	f.mu.Unlock()
	for _, conn := range conns {
		if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
			f.drop(conn)
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			f.drop(conn)
		}
	}
}

// AddBody implements Renderer.
func (f *WebSocketFeed) AddBody(b *CelestialBody) {
	f.broadcast(wsMessage{
		Kind:     "body",
		Body:     b.NameEn,
		RadiusKm: b.Radius,
		Color:    []float64{b.Color.R, b.Color.G, b.Color.B},
	})
}

// UpdatePosition implements Renderer.
func (f *WebSocketFeed) UpdatePosition(nameEn string, position []float64) {
	f.broadcast(wsMessage{Kind: "position", Body: nameEn, Position: position})
}

// SetVisibility implements Renderer.
func (f *WebSocketFeed) SetVisibility(nameEn string, visible bool) {
	f.broadcast(wsMessage{Kind: "visibility", Body: nameEn, Visible: &visible})
}
