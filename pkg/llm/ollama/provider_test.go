package ollama

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

func TestOllamaChat(t *testing.T) {
	var got ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"hi there"},"done":true}`))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "llama3")
	out, err := p.Chat(context.Background(), []llm.Message{{Role: "system", Content: "s"}, {Role: "user", Content: "hi"}}, llm.WithMaxTokens(50))

	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
	assert.Equal(t, "llama3", got.Model)
	assert.False(t, got.Stream)
	assert.Len(t, got.Messages, 2)
	assert.Equal(t, 50, got.Options.NumPredict)
}

func TestOllamaChatHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllamaProvider(srv.URL, "missing").Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}
