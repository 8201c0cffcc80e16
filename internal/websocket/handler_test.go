package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"workflow-hub-be/internal/dto"

	fws "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoChat struct{}

func (echoChat) SendChat(ctx context.Context, req *dto.SendChatRequest, ip string) (*dto.SendChatResponse, error) {
	switch req.UserInput {
	case "fail":
		return nil, errors.New("provider down")
	case "slow":
		time.Sleep(300 * time.Millisecond)
	}
	return &dto.SendChatResponse{Response: "echo: " + req.UserInput, ThreadId: "t-1"}, nil
}

func (echoChat) History(ctx context.Context, threadId string) (*dto.ChatHistoryResponse, error) {
	return nil, nil
}

func startApp(t *testing.T) string {
	t.Helper()
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	RegisterChatRoutes(app.Group("/api"), echoChat{})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return "ws://" + ln.Addr().String() + "/api/chat/ws"
}

func TestChatSocket(t *testing.T) {
	url := startApp(t)

	conn, _, err := fws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`{"userInput":"hello"}`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var res dto.SendChatResponse
	require.NoError(t, json.Unmarshal(data, &res))
	assert.Equal(t, "echo: hello", res.Response)
	assert.Equal(t, "t-1", res.ThreadId)

	require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`{"userInput":"fail"}`)))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)

	var failure dto.ChatErrorResponse
	require.NoError(t, json.Unmarshal(data, &failure))
	assert.Equal(t, "provider down", failure.Error)

	require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`not json`)))
	_, data, err = conn.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, string(data))
}

func TestChatSocketRequiresUpgrade(t *testing.T) {
	app := fiber.New()
	RegisterChatRoutes(app.Group("/api"), echoChat{})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/chat/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}

func TestChatSocketSurvivesSlowTurn(t *testing.T) {
	origPong, origPing := pongWait, pingPeriod
	pongWait, pingPeriod = 150*time.Millisecond, time.Hour
	t.Cleanup(func() { pongWait, pingPeriod = origPong, origPing })

	url := startApp(t)

	conn, _, err := fws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	for _, input := range []string{"slow", "after"} {
		require.NoError(t, conn.WriteMessage(fws.TextMessage, []byte(`{"userInput":"`+input+`"}`)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "reply to %q", input)

		var res dto.SendChatResponse
		require.NoError(t, json.Unmarshal(data, &res))
		assert.Equal(t, "echo: "+input, res.Response)
	}
}
