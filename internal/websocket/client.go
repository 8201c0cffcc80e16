package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"workflow-hub-be/internal/controller"
	"workflow-hub-be/internal/dto"
	"workflow-hub-be/internal/service"

	"github.com/gofiber/websocket/v2"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 64 << 10
)

var (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Client runs chat turns for one websocket connection, one at a time.
type Client struct {
	ChatService service.IChatService

	// The websocket connection.
	Conn *websocket.Conn

	// CallerIP is used for the trial gate and stored API keys.
	CallerIP string

	// Buffered channel of outbound messages.
	Send chan []byte
}

// readPump turns each text frame into a chat turn and queues the reply.
func (c *Client) readPump(ctx context.Context) {
	defer close(c.Send)

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("chat ws read error for %s: %v", c.CallerIP, err)
			}
			return
		}

		reply := c.handle(ctx, data)
		// A slow turn holds up pong processing, so restart the window here.
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		c.Send <- reply
	}
}

func (c *Client) handle(ctx context.Context, data []byte) []byte {
	var req dto.SendChatRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return mustMarshal(dto.ChatErrorResponse{Error: "Invalid request body"})
	}

	res, err := c.ChatService.SendChat(ctx, &req, c.CallerIP)
	if err != nil {
		_, body := controller.ChatError(err)
		return mustMarshal(body)
	}
	return mustMarshal(res)
}

// writePump writes replies and keeps the connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		b, _ = json.Marshal(dto.ChatErrorResponse{Error: err.Error()})
	}
	return b
}
