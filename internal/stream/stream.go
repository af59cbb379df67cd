// Package stream broadcasts ocean height fields to websocket viewers and
// accepts wave commands back from them.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Faultbox/oceanwaves/internal/ocean"
)

const writeTimeout = 2 * time.Second

// Controller receives commands from viewers. *ocean.Simulation implements it.
type Controller interface {
	Apply(cmd ocean.Command) error
	Select(n int) error
}

// HelloMessage is sent once when a viewer connects.
type HelloMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// FrameMessage carries one frame's heights, row-major z*size+x.
type FrameMessage struct {
	Type       string    `json:"type"`
	Frame      int       `json:"frame"`
	Size       int       `json:"size"`
	Resolution int       `json:"resolution"`
	Heights    []float32 `json:"heights"`
	Wireframe  bool      `json:"wireframe"`
	Solid      bool      `json:"solid"`
}

// ControlMessage is sent by viewers. Either field may be set.
type ControlMessage struct {
	Command string `json:"command,omitempty"`
	Select  int    `json:"select,omitempty"`
}

// sendBuffer is the number of frames a viewer may lag behind before older
// frames are replaced.
const sendBuffer = 2

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan *websocket.PreparedMessage
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		id:   uuid.New(),
		conn: conn,
		send: make(chan *websocket.PreparedMessage, sendBuffer),
	}
}

// enqueue hands pm to the writer without blocking. When the buffer is full
// the oldest pending frame is discarded.
func (c *client) enqueue(pm *websocket.PreparedMessage) {
	for {
		select {
		case c.send <- pm:
			return
		default:
		}
		select {
		case <-c.send:
		default:
		}
	}
}

// Hub is an ocean.Renderer that fans frames out to connected viewers.
// It also serves the websocket endpoint via ServeHTTP.
type Hub struct {
	log      *zap.Logger
	ctrl     Controller
	every    int
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
}

// NewHub creates a hub that sends every Nth frame. ctrl may be nil for a
// read-only stream.
func NewHub(every int, ctrl Controller, log *zap.Logger) *Hub {
	if every < 1 {
		every = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		log:   log,
		ctrl:  ctrl,
		every: every,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Submit queues the frame's heights for every viewer and returns without
// waiting on the network. A viewer that falls behind only sees the newest
// frames; write failures drop the viewer and never reach the simulation.
func (h *Hub) Submit(f ocean.Frame) error {
	if f.Number%h.every != 0 || h.Clients() == 0 {
		return nil
	}

	data, err := json.Marshal(FrameMessage{
		Type:       "frame",
		Frame:      f.Number,
		Size:       f.Field.Size(),
		Resolution: f.Mesh.Resolution,
		Heights:    f.Field.Heights(),
		Wireframe:  f.Modes.Wireframe,
		Solid:      f.Modes.Solid,
	})
	if err != nil {
		return err
	}
	pm, err := websocket.NewPreparedMessage(websocket.TextMessage, data)
	if err != nil {
		return err
	}

	h.mu.RLock()
	for _, c := range h.clients {
		c.enqueue(pm)
	}
	h.mu.RUnlock()
	return nil
}

// writeLoop is the only writer of frames to c. It exits when c is dropped.
func (h *Hub) writeLoop(c *client) {
	for pm := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WritePreparedMessage(pm); err != nil {
			h.log.Debug("viewer write failed", zap.Stringer("viewer", c.id), zap.Error(err))
			h.drop(c)
			return
		}
	}
}

// ServeHTTP upgrades the request and serves one viewer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := newClient(conn)
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	defer h.drop(c)

	h.log.Info("viewer connected", zap.Stringer("viewer", c.id), zap.String("remote", r.RemoteAddr))

	hello, _ := json.Marshal(HelloMessage{Type: "hello", ID: c.id.String()})
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, hello); err != nil {
		return
	}
	go h.writeLoop(c)

	for {
		var msg ControlMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("viewer read failed", zap.Stringer("viewer", c.id), zap.Error(err))
			}
			return
		}
		h.handle(c, msg)
	}
}

func (h *Hub) handle(c *client, msg ControlMessage) {
	if h.ctrl == nil {
		return
	}
	if msg.Select != 0 {
		if err := h.ctrl.Select(msg.Select); err != nil {
			h.log.Warn("viewer selection rejected", zap.Stringer("viewer", c.id), zap.Error(err))
		}
	}
	if msg.Command == "" {
		return
	}
	cmd, err := ocean.ParseCommand(msg.Command)
	if err != nil {
		h.log.Warn("viewer command rejected", zap.Stringer("viewer", c.id), zap.Error(err))
		return
	}
	if err := h.ctrl.Apply(cmd); err != nil {
		h.log.Warn("viewer command failed", zap.Stringer("viewer", c.id), zap.Stringer("command", cmd), zap.Error(err))
	}
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	if ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()

	if ok {
		c.conn.Close()
		h.log.Info("viewer disconnected", zap.Stringer("viewer", c.id))
	}
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down")
		c.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeTimeout))
		h.drop(c)
	}
}
