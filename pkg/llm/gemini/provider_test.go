package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workflow-hub-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiChat(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "g-key", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Hello "},{"text":"there"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider("g-key", srv.URL+"/v1beta", "")
	out, err := p.Chat(context.Background(), []llm.Message{
		{Role: llm.RoleSystem, Content: "You recommend workflows."},
		{Role: llm.RoleUser, Content: "hi"},
		{Role: llm.RoleAssistant, Content: "What do you automate?"},
		{Role: llm.RoleUser, Content: "email"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Hello there", out)
	require.NotNil(t, got.SystemInstruction)
	assert.Equal(t, "You recommend workflows.", got.SystemInstruction.Parts[0].Text)
	require.Len(t, got.Contents, 3)
	assert.Equal(t, "user", got.Contents[0].Role)
	assert.Equal(t, "model", got.Contents[1].Role)
}

func TestGeminiChatErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", 400, `{"error":{"code":400,"message":"API key not valid"}}`, "gemini api error (status 400): API key not valid"},
		{"blocked", 200, `{"promptFeedback":{"blockReason":"SAFETY"}}`, "gemini blocked the prompt: SAFETY"},
		{"no candidates", 200, `{"candidates":[]}`, "gemini returned no candidates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewGeminiProvider("k", srv.URL, "gemini-1.5-flash").Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
