// Package client owns the duplex connection to the game server: dial,
// keepalive, bounded reconnection and the resume trigger.
package client

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ovalle/stockpile/internal/network/protocol"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	handshakeTimeout = 10 * time.Second
)

// State is the connection lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateConnecting
	StateConnected
	StateDisconnected
	// StateExhausted means the bounded reconnect loop gave up. Terminal
	// until an explicit Resume or Connect.
	StateExhausted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateDisconnected:
		return "disconnected"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

var (
	ErrNotConnected = errors.New("connection closed")
	ErrSendBuffer   = errors.New("send buffer full")
	// ErrJoinInFlight means a handshake is already pending; overlapping
	// resume triggers must not produce a join storm.
	ErrJoinInFlight = errors.New("join already in flight")
)

// Client is a websocket client with automatic bounded reconnection.
type Client struct {
	ServerURL string

	maxReconnectAttempts int
	reconnectDelay       time.Duration

	conn *websocket.Conn
	send chan []byte
	done chan struct{}

	// OnMessage receives every decoded server message.
	OnMessage func(*protocol.Message)
	// OnStateChange observes every connection state transition.
	OnStateChange func(State)
	// OnResync fires whenever state must be re-requested: after a
	// successful reconnect and on a resume trigger while connected.
	OnResync func()

	mu           sync.RWMutex
	closed       bool
	state        atomic.Int32
	reconnecting atomic.Bool
	joinInFlight atomic.Bool
}

// New creates a client. The connection is not established until
// Connect is called; the lobby connects eagerly, a resumed game lazily.
func New(serverURL string, maxAttempts int, delay time.Duration) *Client {
	c := &Client{
		ServerURL:            serverURL,
		maxReconnectAttempts: maxAttempts,
		reconnectDelay:       delay,
		send:                 make(chan []byte, 256),
		done:                 make(chan struct{}),
	}
	c.state.Store(int32(StateIdle))
	return c
}

// State returns the current connection state.
func (c *Client) State() State {
	return State(c.state.Load())
}

// IsConnected reports whether the transport believes it has a live
// connection. Necessary but not sufficient: the server may have dropped
// us silently, so callers must still resync on resume.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

func (c *Client) setState(s State) {
	if c.state.Swap(int32(s)) == int32(s) {
		return
	}
	if c.OnStateChange != nil {
		c.OnStateChange(s)
	}
}

// Connect dials the server and starts the read/write pumps.
func (c *Client) Connect() error {
	c.setState(StateConnecting)

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(c.ServerURL, nil)
	if err != nil {
		c.setState(StateDisconnected)
		// The retry loop takes over; exhaustion surfaces via state.
		if !c.reconnecting.Load() {
			go c.tryReconnect()
		}
		return err
	}

	send, done := c.install(conn)

	c.setState(StateConnected)

	go c.readPump(conn)
	go c.writePump(conn, send, done)

	return nil
}

// install retires the previous connection and its pumps, then wires in
// the replacement. The returned channels belong to the new writePump;
// the old pump sees its done channel close and exits with its own conn.
func (c *Client) install(conn *websocket.Conn) (chan []byte, chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		select {
		case <-c.done:
		default:
			close(c.done)
		}
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}

	c.conn = conn
	c.closed = false
	c.send = make(chan []byte, 256)
	c.done = make(chan struct{})

	return c.send, c.done
}

// Send encodes and queues a message for the server.
func (c *Client) Send(msg *protocol.Message) error {
	c.mu.RLock()
	if c.closed || c.conn == nil {
		c.mu.RUnlock()
		return ErrNotConnected
	}
	send := c.send
	c.mu.RUnlock()

	data, err := msg.Encode()
	if err != nil {
		return err
	}

	select {
	case send <- data:
		return nil
	default:
		return ErrSendBuffer
	}
}

// Close tears the connection down for good. No reconnect follows.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	}
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
