package stream

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/junhoi254/investment-academy/internal/dto"
)

// DefaultReconnectDelay is the fixed pause between a transport drop and the
// next connect attempt. There is no backoff growth and no retry cap; every
// failure is treated the same.
const DefaultReconnectDelay = 5 * time.Second

type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateTornDown:
		return "torn down"
	}
	return "unknown"
}

type Config struct {
	// BaseURL is the websocket origin, e.g. ws://localhost:8000.
	BaseURL string
	RoomID  int
	// Token rides along as a query parameter when present; anonymous
	// read-only viewing is allowed without it.
	Token          string
	ReconnectDelay time.Duration
	Dialer         *websocket.Dialer

	// OnMessage receives every non-control frame, verbatim, in arrival
	// order, exactly once per frame. No dedup against the history snapshot.
	OnMessage func(dto.Message)
	// OnSystem receives control-typed frames; they never reach OnMessage.
	OnSystem func(notice, timestamp string)
	// OnStatus fires on every state transition, immediately at close time.
	OnStatus func(State)
}

// Manager keeps one live room-scoped socket and feeds inbound frames to its
// callbacks. It is receive-only: posting goes through the HTTP client. The
// manager's job starts after the history snapshot; it strictly appends what
// arrives later.
//
// Lifecycle is bound to the owning view: Close cancels the pending
// reconnect, releases the transport and returns only once no callback can
// fire again, so switching rooms can never leak events from the old one.
type Manager struct {
	cfg    Config
	url    string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	mu    sync.Mutex
	state State
	conn  *websocket.Conn
}

func New(cfg Config) *Manager {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.Dialer == nil {
		cfg.Dialer = websocket.DefaultDialer
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		cfg:    cfg,
		url:    buildURL(cfg.BaseURL, cfg.RoomID, cfg.Token),
		ctx:    ctx,
		cancel: cancel,
		state:  StateDisconnected,
	}
}

func (m *Manager) URL() string {
	return m.url
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start launches the connect loop. Call it once.
func (m *Manager) Start() {
	m.wg.Add(1)
	go m.run()
}

// Close tears the manager down: the terminal state. It cancels any pending
// reconnect timer, closes the transport and blocks until the read loop has
// exited, guaranteeing no callback fires after it returns.
func (m *Manager) Close() {
	m.cancel()

	m.mu.Lock()
	if m.conn != nil {
		m.conn.Close()
	}
	m.mu.Unlock()

	m.wg.Wait()

	m.once.Do(func() {
		m.mu.Lock()
		m.state = StateTornDown
		m.mu.Unlock()
		setConnected(false)
		if m.cfg.OnStatus != nil {
			m.cfg.OnStatus(StateTornDown)
		}
	})
}

func (m *Manager) run() {
	defer m.wg.Done()

	for {
		if m.closed() {
			return
		}
		m.setState(StateConnecting)

		conn, resp, err := m.cfg.Dialer.DialContext(m.ctx, m.url, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			if m.closed() {
				return
			}
			log.Printf("stream: connect to room %d failed: %v", m.cfg.RoomID, err)
			m.setState(StateDisconnected)
			incReconnects()
			if !m.waitReconnect() {
				return
			}
			continue
		}

		if !m.adoptConn(conn) {
			conn.Close()
			return
		}
		incConnects()
		setConnected(true)
		m.setState(StateConnected)

		m.readLoop(conn)

		m.dropConn()
		setConnected(false)
		if m.closed() {
			return
		}
		// The indicator flips now; the reconnect happens a full delay later.
		m.setState(StateDisconnected)
		incReconnects()
		if !m.waitReconnect() {
			return
		}
	}
}

func (m *Manager) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(512 * 1024)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !m.closed() && !isExpectedClose(err) {
				log.Printf("stream: read from room %d failed: %v", m.cfg.RoomID, err)
			}
			conn.Close()
			return
		}
		m.dispatch(data)
	}
}

// dispatch routes one inbound frame by its type tag. Control frames are
// consumed for side effects only; everything else is appended to the log.
// A frame that does not decode is dropped whole, no partial recovery.
func (m *Manager) dispatch(data []byte) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		log.Printf("stream: dropping malformed frame: %v", err)
		incFrames("invalid")
		return
	}

	if probe.Type == dto.SystemFrameType {
		var frame dto.SystemFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Printf("stream: dropping malformed system frame: %v", err)
			incFrames("invalid")
			return
		}
		incFrames("system")
		if m.cfg.OnSystem != nil {
			m.cfg.OnSystem(frame.Message, frame.Timestamp)
		}
		return
	}

	var msg dto.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("stream: dropping malformed chat frame: %v", err)
		incFrames("invalid")
		return
	}
	incFrames("chat")
	if m.cfg.OnMessage != nil {
		m.cfg.OnMessage(msg)
	}
}

func (m *Manager) waitReconnect() bool {
	timer := time.NewTimer(m.cfg.ReconnectDelay)
	defer timer.Stop()

	select {
	case <-m.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (m *Manager) adoptConn(conn *websocket.Conn) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx.Err() != nil {
		return false
	}
	m.conn = conn
	return true
}

func (m *Manager) dropConn() {
	m.mu.Lock()
	m.conn = nil
	m.mu.Unlock()
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	if m.state == s || m.state == StateTornDown {
		m.mu.Unlock()
		return
	}
	m.state = s
	m.mu.Unlock()

	if m.cfg.OnStatus != nil {
		m.cfg.OnStatus(s)
	}
}

func (m *Manager) closed() bool {
	return m.ctx.Err() != nil
}

func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	)
}

func buildURL(base string, roomID int, token string) string {
	u := strings.TrimRight(base, "/") + "/ws/" + strconv.Itoa(roomID)
	if token != "" {
		u += "?token=" + url.QueryEscape(token)
	}
	return u
}
