package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nurashi/Deskbot/internal/config"
	"github.com/nurashi/Deskbot/internal/conversation"
)

// RequestBody is the OpenAI-style chat completions payload.
type RequestBody struct {
	Model    string              `json:"model"`
	Messages []conversation.Turn `json:"messages"`
}

type ResponseBody struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to the OpenRouter chat completions API.
type Client struct {
	baseURL string
	model   string
	referer string
	title   string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg config.OpenRouter) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		referer: cfg.Referer,
		title:   cfg.Title,
		apiKey:  os.Getenv("OPENROUTER_API_KEY"),
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// ChatCompletion sends the assembled message list and returns the generated
// text. The caller's context bounds the round trip, so a disconnected
// client cancels the request. Failures are returned as-is; the handler
// decides how to surface them, and nothing is retried.
func (c *Client) ChatCompletion(ctx context.Context, messages []conversation.Turn) (string, error) {
	body := RequestBody{
		Model:    c.model,
		Messages: messages,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(string(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.referer != "" {
		req.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		req.Header.Set("X-Title", c.title)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var parsed ResponseBody
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return "AI response is empty", nil
	}

	return parsed.Choices[0].Message.Content, nil
}
