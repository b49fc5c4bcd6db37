// Package monitor streams tween Scheduler snapshots to browsers and tools
// over WebSocket.
//
// The Scheduler is not safe for concurrent use, so the monitor never touches
// it from a network goroutine. Call [Server.Sync] from the thread that ticks
// the scheduler: it applies control messages received since the last call and
// broadcasts a fresh snapshot.
//
//	mon := monitor.New(log.Logger)
//	go http.ListenAndServe(":8090", mon.Handler())
//	for {
//		tweens.Tick(dt)
//		mon.Sync(tweens)
//	}
package monitor

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/phanxgames/tween"
)

// writeTimeout bounds each WebSocket write. A client that misses it is
// dropped.
const writeTimeout = 200 * time.Millisecond

// maxPending caps queued control messages between two Sync calls.
const maxPending = 64

// sendBuffer is the number of frames queued per client. Frames for a client
// whose queue is full are skipped.
const sendBuffer = 4

// Frame is the JSON message sent to snapshot clients.
type Frame struct {
	T        int64          `json:"t"`
	FrameID  uint64         `json:"frame_id"`
	Snapshot tween.Snapshot `json:"snapshot"`
}

// Control is a message accepted on the control socket. Every field is
// optional; set fields are applied in the order listed.
type Control struct {
	TimeScale *float64 `json:"time_scale,omitempty"`
	Paused    *bool    `json:"paused,omitempty"`
	StopAll   bool     `json:"stop_all,omitempty"`
}

// client is a snapshot socket with its own writer goroutine.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Server fans snapshots out to WebSocket clients.
type Server struct {
	mu        sync.Mutex
	clients   map[*client]bool
	last      []byte
	frameID   uint64
	pending   []Control
	startTime time.Time
	log       zerolog.Logger
	upgrader  websocket.Upgrader
}

// New creates a Server logging to log.
func New(log zerolog.Logger) *Server {
	return &Server{
		clients:   map[*client]bool{},
		startTime: time.Now(),
		log:       log,
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler returns a mux serving /ws (snapshots), /control and /health.
func (m *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.HandleSnapshotsWS)
	mux.HandleFunc("/control", m.HandleControlWS)
	mux.HandleFunc("/health", m.HandleHealth)
	return mux
}

// Sync applies queued control messages to s and then publishes its snapshot.
func (m *Server) Sync(s *tween.Scheduler) {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, c := range pending {
		apply(s, c)
	}
	m.Publish(s.Snapshot())
}

func apply(s *tween.Scheduler, c Control) {
	if c.TimeScale != nil {
		s.SetTimeScale(*c.TimeScale)
	}
	if c.Paused != nil {
		s.SetPausedAll(*c.Paused, nil)
	}
	if c.StopAll {
		s.StopAll(nil)
	}
}

// Publish broadcasts snap to every snapshot client and keeps it for clients
// connecting later. It never waits on the network.
func (m *Server) Publish(snap tween.Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frameID++
	b, err := json.Marshal(Frame{T: time.Now().UnixNano(), FrameID: m.frameID, Snapshot: snap})
	if err != nil {
		m.log.Error().Err(err).Msg("marshal snapshot")
		return
	}
	m.last = b
	for c := range m.clients {
		select {
		case c.send <- b:
		default:
			m.log.Debug().Str("remote", c.conn.RemoteAddr().String()).Uint64("frame_id", m.frameID).Msg("client is behind, frame skipped")
		}
	}
}

// writeLoop sends queued frames to c until its queue is closed or a write
// fails.
func (m *Server) writeLoop(c *client) {
	for b := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, b); err != nil {
			m.log.Debug().Err(err).Str("remote", c.conn.RemoteAddr().String()).Msg("write snapshot, dropping client")
			m.drop(c)
			return
		}
	}
}

// drop unregisters c and closes its connection.
func (m *Server) drop(c *client) {
	m.mu.Lock()
	m.remove(c)
	m.mu.Unlock()
}

// remove is drop with m.mu held.
func (m *Server) remove(c *client) {
	if !m.clients[c] {
		return
	}
	delete(m.clients, c)
	close(c.send)
	c.conn.Close()
}

// Clients returns the number of connected snapshot clients.
func (m *Server) Clients() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.clients)
}

// HandleSnapshotsWS upgrades the request and streams frames to it until the
// client disconnects. The latest frame is sent immediately.
func (m *Server) HandleSnapshotsWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Debug().Err(err).Msg("upgrade snapshot socket")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	m.mu.Lock()
	m.clients[c] = true
	if m.last != nil {
		c.send <- m.last
	}
	m.mu.Unlock()
	m.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("monitor client connected")

	go m.writeLoop(c)
	go func() {
		defer m.drop(c)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// HandleControlWS reads Control messages and queues them for the next Sync.
func (m *Server) HandleControlWS(w http.ResponseWriter, r *http.Request) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Debug().Err(err).Msg("upgrade control socket")
		return
	}
	defer conn.Close()
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var c Control
		if err := json.Unmarshal(data, &c); err != nil {
			m.log.Warn().Err(err).Msg("invalid control message")
			continue
		}
		m.mu.Lock()
		if len(m.pending) < maxPending {
			m.pending = append(m.pending, c)
		} else {
			m.log.Warn().Msg("control queue full, message dropped")
		}
		m.mu.Unlock()
	}
}

// HandleHealth reports the frame counter, uptime and client count as JSON.
func (m *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	resp := map[string]any{
		"frame_id": m.frameID,
		"uptime_s": time.Since(m.startTime).Seconds(),
		"clients":  len(m.clients),
	}
	m.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// Close disconnects every snapshot client.
func (m *Server) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for c := range m.clients {
		m.remove(c)
	}
}
