package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/diwise/climate-hub/internal/pkg/application/coordinator"
	"github.com/diwise/climate-hub/internal/pkg/presentation/api/auth"
	"github.com/diwise/climate-hub/pkg/types"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Per client send buffer. A client that falls this far behind is dropped.
	sendBufferSize = 64
)

const (
	eventInitialState = "initial_state"
	eventDeviceUpdate = "device_update"
	eventCloudMessage = "cloud_message"
)

type wsEvent struct {
	Type    string            `json:"type"`
	Devices []types.DeviceDTO `json:"devices,omitempty"`
	Device  *types.DeviceDTO  `json:"device,omitempty"`
	Payload json.RawMessage   `json:"payload,omitempty"`
}

// client is one websocket subscriber. Raw cloud messages are only fanned
// out to subscribers whose token carries the control scope.
type client struct {
	conn          *websocket.Conn
	send          chan []byte
	cloudMessages bool

	closeOnce sync.Once
	closed    atomic.Bool
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		close(c.send)
	})
}

// enqueue hands a message to the client without blocking the hub. A full
// buffer means the client can not keep up, so it is told to go away.
func (c *client) enqueue(msg []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	if c.closed.Load() {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

type broadcast struct {
	payload     []byte
	controlOnly bool
}

// hub fans device updates and cloud messages out to websocket subscribers.
type hub struct {
	svc coordinator.Coordinator

	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcasts chan broadcast
}

func newHub(svc coordinator.Coordinator) *hub {
	return &hub{
		svc:        svc,
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcasts: make(chan broadcast, 256),
	}
}

func (h *hub) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				c.close()
			}
			return
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				c.close()
			}
		case msg := <-h.broadcasts:
			for c := range h.clients {
				if msg.controlOnly && !c.cloudMessages {
					continue
				}
				if !c.enqueue(msg.payload) {
					delete(h.clients, c)
					c.close()
				}
			}
		}
	}
}

func (h *hub) broadcast(evt wsEvent, controlOnly bool) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	select {
	case h.broadcasts <- broadcast{payload: b, controlOnly: controlOnly}:
	default:
	}
}

func (h *hub) broadcastDeviceUpdate(device types.Device) {
	dto := NewDeviceDTO(device)
	h.broadcast(wsEvent{Type: eventDeviceUpdate, Device: &dto}, false)
}

// raw vendor frames may leak account details, so they stay behind the
// control scope
func (h *hub) broadcastCloudMessage(msg []byte) {
	h.broadcast(wsEvent{Type: eventCloudMessage, Payload: msg}, true)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func websocketHandler(log *slog.Logger, h *hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("websocket upgrade failed", "err", err.Error())
			return
		}

		c := &client{
			conn:          conn,
			send:          make(chan []byte, sendBufferSize),
			cloudMessages: auth.HasScope(r.Context(), auth.ScopeControl),
		}

		// the first frame a subscriber sees is the full twin
		devices := lo.Map(h.svc.GetDevices(r.Context()), func(d types.Device, _ int) types.DeviceDTO {
			return NewDeviceDTO(d)
		})
		initial, err := json.Marshal(wsEvent{Type: eventInitialState, Devices: devices})
		if err != nil {
			conn.Close()
			return
		}
		c.send <- initial

		h.register <- c

		go c.writePump(h)
		go c.readPump(h)
	}
}

func (c *client) writePump(h *hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump discards anything the client sends but keeps the connection
// honest via pong deadlines.
func (c *client) readPump(h *hub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
