package recommender

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

const openaiBaseURL = "https://api.openai.com/v1"

// openaiClient is a minimal chat-completions client. Requests are throttled
// and retried on transport errors, rate limits and server errors; other API
// errors fail immediately.
type openaiClient struct {
	apiKey string
	model  string
	httpc  *http.Client

	throttleMu  sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func newOpenAIClient(apiKey, model string, httpc *http.Client) *openaiClient {
	if httpc == nil {
		httpc = &http.Client{Timeout: 60 * time.Second}
	}
	return &openaiClient{
		apiKey:      strings.TrimSpace(apiKey),
		model:       strings.TrimSpace(model),
		httpc:       httpc,
		minInterval: 100 * time.Millisecond,
	}
}

func (c *openaiClient) isConfigured() bool {
	return c.apiKey != "" && c.model != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// chat sends a system instruction and a user message and returns the model's
// reply text.
func (c *openaiClient) chat(ctx context.Context, system, user string) (string, error) {
	if !c.isConfigured() {
		return "", errors.New("openai api key or model not configured")
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	var text string
	err = retry.Do(
		func() error {
			c.throttleMu.Lock()
			since := time.Since(c.lastRequest)
			if since < c.minInterval {
				time.Sleep(c.minInterval - since)
			}
			c.lastRequest = time.Now()
			c.throttleMu.Unlock()

			req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiBaseURL+"/chat/completions", bytes.NewReader(bodyBytes))
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create chat request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+c.apiKey)

			resp, err := c.httpc.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
				return fmt.Errorf("chat completion failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
			}
			if resp.StatusCode >= 400 {
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
				return retry.Unrecoverable(fmt.Errorf("chat completion failed: %s: %s", resp.Status, strings.TrimSpace(string(body))))
			}

			var chatResp chatResponse
			if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
				return retry.Unrecoverable(fmt.Errorf("decode chat response: %w", err))
			}
			if chatResp.Error != nil {
				return retry.Unrecoverable(fmt.Errorf("chat completion error: %s", chatResp.Error.Message))
			}
			if len(chatResp.Choices) == 0 {
				return retry.Unrecoverable(errors.New("chat completion returned no choices"))
			}
			text = chatResp.Choices[0].Message.Content
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", err
	}
	return text, nil
}
