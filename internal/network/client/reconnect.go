package client

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ovalle/stockpile/internal/logger"
)

// tryReconnect runs the bounded reconnect loop: fixed delay between
// attempts, terminal StateExhausted when the budget runs out.
func (c *Client) tryReconnect() {
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Printf("[PANIC] tryReconnect panic recovered: %v", r)
			c.reconnecting.Store(false)
		}
	}()

	if !c.reconnecting.CompareAndSwap(false, true) {
		return
	}
	defer c.reconnecting.Store(false)

	for attempt := 1; attempt <= c.maxReconnectAttempts; attempt++ {
		if c.isClosed() {
			return
		}

		logger.LogInfo("reconnect attempt %d/%d", attempt, c.maxReconnectAttempts)
		c.setState(StateConnecting)
		time.Sleep(c.reconnectDelay)

		dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
		conn, _, err := dialer.Dial(c.ServerURL, nil)
		if err != nil {
			c.setState(StateDisconnected)
			continue
		}

		send, done := c.install(conn)

		c.setState(StateConnected)

		go c.readPump(conn)
		go c.writePump(conn, send, done)

		// The server is the sole source of truth; a fresh connection
		// knows nothing until we re-request state.
		if c.OnResync != nil {
			c.OnResync()
		}
		return
	}

	logger.LogError("reconnect exhausted after %d attempts", c.maxReconnectAttempts)
	c.setState(StateExhausted)
}

// Resume is the foreground/visibility trigger, independent of the
// transport's own reconnect timer. Disconnected: force a fresh attempt.
// Connected: resync anyway, since the transport can own a stale
// connection the server has already discarded.
func (c *Client) Resume() {
	switch c.State() {
	case StateConnected:
		if c.OnResync != nil {
			c.OnResync()
		}
	case StateConnecting:
		// A reconnect loop is already working on it.
	default:
		if !c.reconnecting.Load() {
			go c.tryReconnect()
		}
	}
}
