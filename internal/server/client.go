package server

import (
	"encoding/json"
	"log/slog"

	"counterpoint-game/internal/protocol"

	"github.com/gorilla/websocket"
)

// Client represents a single WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	ID   string // Unique identifier for the client/player
	Name string // Player's chosen name
}

// ReadPump handles incoming messages from the WebSocket connection.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("unexpected close", "client", c.ID, "err", err)
			}
			break
		}

		var msg protocol.Message
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			slog.Warn("bad message from client", "client", c.ID, "err", err)
			continue
		}

		if msg.Type != "ping" {
			slog.Debug("message received", "type", msg.Type, "client", c.ID, "name", c.Name)
		}
		c.hub.processMessage <- clientMessage{client: c, message: msg}
	}
}

// WritePump handles outgoing messages to the WebSocket connection.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			slog.Warn("write error", "client", c.ID, "name", c.Name, "err", err)
			break
		}
	}
}
