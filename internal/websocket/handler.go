package websocket

import (
	"context"

	"workflow-hub-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const callerIPLocal = "caller_ip"

// RegisterChatRoutes mounts the chat socket at /chat/ws under r.
func RegisterChatRoutes(r fiber.Router, chatService service.IChatService) {
	r.Use("/chat/ws", func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}
		ctx.Locals(callerIPLocal, ctx.IP())
		return ctx.Next()
	})
	r.Get("/chat/ws", websocket.New(func(c *websocket.Conn) {
		ip, _ := c.Locals(callerIPLocal).(string)
		ServeChat(chatService, c, ip)
	}))
}

// ServeChat handles one connection until the peer goes away.
func ServeChat(chatService service.IChatService, c *websocket.Conn, callerIP string) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := &Client{ChatService: chatService, Conn: c, CallerIP: callerIP, Send: make(chan []byte, 16)}

	done := make(chan struct{})
	go func() {
		client.writePump()
		close(done)
	}()
	client.readPump(ctx)
	<-done
}
