package recommender

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
)

// roundTripFunc lets tests fake both external APIs without a network.
type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

// chatReply wraps content into a chat-completions response body.
func chatReply(t *testing.T, content string) *http.Response {
	t.Helper()
	body, err := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	if err != nil {
		t.Fatalf("marshal chat reply: %v", err)
	}
	return jsonResponse(http.StatusOK, string(body))
}

// decodeChatRequest pulls the system and user messages out of a faked
// chat-completions request so tests can branch on which pipeline stage is
// calling.
func decodeChatRequest(t *testing.T, req *http.Request) (system, user string) {
	t.Helper()
	var payload chatRequest
	if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
		t.Fatalf("decode chat request: %v", err)
	}
	for _, m := range payload.Messages {
		switch m.Role {
		case "system":
			system = m.Content
		case "user":
			user = m.Content
		}
	}
	return system, user
}

// newTestService builds a Service whose clients talk to the given transport
// with throttling disabled.
func newTestService(rt http.RoundTripper) *Service {
	httpc := &http.Client{Transport: rt}
	tmdb := newTMDBClient("test-tmdb-key", "US", httpc)
	tmdb.minInterval = 0
	openai := newOpenAIClient("test-openai-key", "test-model", httpc)
	openai.minInterval = 0
	return &Service{
		tmdb:     tmdb,
		openai:   openai,
		titles:   substringTitleResolver{},
		sessions: newSessionStore(),
	}
}
