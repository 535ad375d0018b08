package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurashi/Deskbot/internal/config"
	"github.com/nurashi/Deskbot/internal/conversation"
)

func testClient(baseURL string) *Client {
	return NewClient(config.OpenRouter{
		BaseURL:        baseURL,
		Model:          "test-model",
		Referer:        "https://example.com",
		Title:          "deskbot-test",
		TimeoutSeconds: 5,
	})
}

func TestChatCompletion(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "https://example.com", r.Header.Get("HTTP-Referer"))

		var body RequestBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body.Model)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, conversation.RoleSystem, body.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello there"}}]}`))
	}))
	defer ts.Close()

	reply, err := testClient(ts.URL).ChatCompletion(context.Background(), []conversation.Turn{
		{Role: conversation.RoleSystem, Content: "sys"},
		{Role: conversation.RoleUser, Content: "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello there", reply)
}

func TestChatCompletionAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"model overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := testClient(ts.URL).ChatCompletion(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestChatCompletionEmptyChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer ts.Close()

	reply, err := testClient(ts.URL).ChatCompletion(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, "AI response is empty", reply)
}

func TestChatCompletionCancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(ts.URL).ChatCompletion(ctx, nil)
	require.Error(t, err)
}
