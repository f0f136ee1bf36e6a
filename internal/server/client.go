package server

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/jtsang27/crust-sim/internal/game/entity"
)

// Client is one websocket connection and its match attachment.
type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	matchID string
	seat    entity.PlayerID
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		conn: conn,
		send: make(chan []byte, 256),
		seat: entity.Player1,
	}
}

// reply queues a response on the client's send channel, dropping it if the
// client has fallen too far behind.
func (c *Client) reply(resp Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// readPump decodes inbound messages and hands them to the hub. Requests
// from one connection are handled in arrival order.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var req Request
		if err := json.Unmarshal(message, &req); err != nil {
			hub.logger.Debug("malformed request", zap.Error(err))
			c.reply(Response{Type: "error", Error: "malformed request: " + err.Error()})
			continue
		}
		hub.handleRequest(c, req)
	}
}

// writePump drains the send channel onto the socket.
func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
