package recommender

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"cinemood/models"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{"Here is your profile:\n```json\n{\"a\":1}\n```\nEnjoy!", `{"a":1}`, true},
		{"no json here", "", false},
		{"} backwards {", "", false},
	}
	for _, tt := range tests {
		got, ok := extractJSONObject(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("extractJSONObject(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

const validProfileJSON = `{
	"preferred_genres": [{"id": 878, "name": "Science Fiction"}, {"id": 53, "name": "Thriller"}],
	"disliked_genres": [{"id": 27, "name": "Horror"}],
	"tone_preferences": ["tense", "cerebral"],
	"narrative_style": "plot-driven",
	"decade_preference": "modern",
	"viewing_context": "alone"
}`

func TestExtractProfileRoundTripsValidJSON(t *testing.T) {
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return chatReply(t, "Sure! Here's the profile:\n"+validProfileJSON+"\nHope that helps."), nil
	}))

	profile := svc.extractProfile(context.Background(), []models.QuizAnswer{{Question: 1, Answer: "sci-fi"}})

	require.Equal(t, []models.GenreRef{
		{ID: 878, Name: "Science Fiction"},
		{ID: 53, Name: "Thriller"},
	}, profile.PreferredGenres)
	require.Equal(t, []models.GenreRef{{ID: 27, Name: "Horror"}}, profile.DislikedGenres)
	require.Equal(t, []string{"tense", "cerebral"}, profile.TonePreferences)
	require.Equal(t, "plot-driven", profile.NarrativeStyle)
	require.Equal(t, "modern", profile.DecadePreference)
	require.Equal(t, "alone", profile.ViewingContext)
}

func TestExtractProfileFallsBackOnMalformedText(t *testing.T) {
	replies := []string{
		"I'm sorry, I can't produce JSON right now.",
		`{"preferred_genres": [{"id": 18`,
		"",
	}
	for _, reply := range replies {
		svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return chatReply(t, reply), nil
		}))
		profile := svc.extractProfile(context.Background(), []models.QuizAnswer{{Question: 1, Answer: "anything"}})
		require.Equal(t, defaultProfile(), profile, "reply %q should yield the default profile", reply)
	}
}

func TestExtractProfileFallsBackOnTransportFailure(t *testing.T) {
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":{"message":"bad request"}}`), nil
	}))
	profile := svc.extractProfile(context.Background(), []models.QuizAnswer{{Question: 1, Answer: "anything"}})
	require.Equal(t, defaultProfile(), profile)
}

func TestProfileSummaryPropagatesFailure(t *testing.T) {
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadRequest, `{"error":{"message":"bad request"}}`), nil
	}))
	_, err := svc.profileSummary(context.Background(), defaultProfile())
	require.Error(t, err)
}

func TestProfileSummaryReturnsModelText(t *testing.T) {
	svc := newTestService(roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return chatReply(t, "  You're a drama lover at heart.  "), nil
	}))
	summary, err := svc.profileSummary(context.Background(), defaultProfile())
	require.NoError(t, err)
	require.Equal(t, "You're a drama lover at heart.", summary)
}
