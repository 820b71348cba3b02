package client

import (
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ovalle/stockpile/internal/logger"
	"github.com/ovalle/stockpile/internal/network/protocol"
)

// readPump reads server messages until the connection dies, then hands
// off to the reconnect loop. It owns exactly the connection it was
// started with; a reconnect starts a new pump rather than reusing this
// one.
func (c *Client) readPump(conn *websocket.Conn) {
	defer c.handleReadExit(conn)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.LogError("read: %v", err)
			}
			return
		}

		msg, err := protocol.Decode(message)
		if err != nil {
			log.Printf("message decode error: %v", err)
			continue
		}

		if c.OnMessage != nil {
			c.OnMessage(msg)
		}
	}
}

func (c *Client) handleReadExit(conn *websocket.Conn) {
	if r := recover(); r != nil {
		logger.LogPanic(r)
		log.Printf("[PANIC] readPump panic recovered: %v", r)
	}

	// A pump retired by a reconnect must not trigger another one.
	c.mu.RLock()
	stale := c.conn != conn
	c.mu.RUnlock()
	if stale || c.isClosed() {
		return
	}

	c.setState(StateDisconnected)
	if !c.reconnecting.Load() {
		go c.tryReconnect()
	}
}

// writePump drains its send queue and keeps its connection alive with
// pings. It closes over the channels it was started with: when a
// reconnect installs replacements, the old done closes and this pump
// exits instead of writing to a connection it no longer owns.
func (c *Client) writePump(conn *websocket.Conn, send chan []byte, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		if r := recover(); r != nil {
			logger.LogPanic(r)
			log.Printf("[PANIC] writePump panic recovered: %v", r)
		}
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-done:
			return
		}
	}
}
