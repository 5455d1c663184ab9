package recommender

import (
	"context"
	"net/http"
	"testing"
)

func TestChatRetriesServerErrors(t *testing.T) {
	var calls int
	c := newOpenAIClient("key", "model", &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return jsonResponse(http.StatusInternalServerError, `{}`), nil
			}
			return chatReply(t, "hello"), nil
		}),
	})
	c.minInterval = 0

	text, err := c.chat(context.Background(), "system", "user")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if text != "hello" {
		t.Fatalf("unexpected reply: %q", text)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestChatDoesNotRetryAPIErrors(t *testing.T) {
	var calls int
	c := newOpenAIClient("key", "model", &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			calls++
			return jsonResponse(http.StatusBadRequest, `{"error":{"message":"bad model"}}`), nil
		}),
	})
	c.minInterval = 0

	if _, err := c.chat(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("expected 1 attempt for 4xx, got %d", calls)
	}
}

func TestChatRequiresConfiguration(t *testing.T) {
	c := newOpenAIClient("", "", nil)
	if _, err := c.chat(context.Background(), "system", "user"); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
}
