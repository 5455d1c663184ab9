package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cinemood/models"
)

// quizQuestions is the fixed personality quiz presented to the user. Answer
// order matters: answers are sent to the model indexed by question number.
var quizQuestions = []string{
	"Do you prefer action-packed movies or slow-paced character studies?",
	"Do you enjoy movies with happy endings or prefer more realistic/ambiguous endings?",
	"Name three of your favorite movies of all time.",
	"Do you like movies that make you think, or ones that are pure entertainment?",
	"Do you prefer classic films or modern cinema?",
	"Are there any genres you absolutely avoid watching?",
	"Do you enjoy foreign language films?",
	"Do you prefer to watch movies alone or with others?",
}

const profileSystemPrompt = "You are a film expert who can analyze a person's movie preferences. " +
	"Create a detailed profile of their film taste based on their quiz answers. " +
	"Include their preferred genres, themes, and film qualities. " +
	"Structure your response as a JSON object with these keys: " +
	"preferred_genres (list of TMDB genre IDs and names), " +
	"disliked_genres (list of TMDB genre IDs and names), " +
	"tone_preferences (list), narrative_style (string), " +
	"decade_preference (string), and viewing_context (string). " +
	"Use proper TMDB genre IDs: " + genrePromptLegend + "."

// defaultProfile is substituted whenever the model's profile cannot be
// parsed, so downstream stages always see a fully populated profile.
func defaultProfile() models.TasteProfile {
	return models.TasteProfile{
		PreferredGenres: []models.GenreRef{
			{ID: 18, Name: "Drama"},
			{ID: 35, Name: "Comedy"},
		},
		DislikedGenres:   []models.GenreRef{},
		TonePreferences:  []string{"uplifting"},
		NarrativeStyle:   "character-driven",
		DecadePreference: "modern",
		ViewingContext:   "social",
	}
}

// extractJSONObject slices the first '{' through the last '}' out of model
// text, stripping any surrounding prose or code fences.
func extractJSONObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// extractProfile asks the model to turn quiz answers into a structured taste
// profile. Any parse failure falls back to the default profile without a
// second model call; the failure is logged, never returned.
func (s *Service) extractProfile(ctx context.Context, answers []models.QuizAnswer) models.TasteProfile {
	var sb strings.Builder
	for _, a := range answers {
		fmt.Fprintf(&sb, "Q%d: %s\n", a.Question, a.Answer)
	}

	user := "Here are my answers to the movie preference quiz:\n" + sb.String()
	text, err := s.openai.chat(ctx, profileSystemPrompt, user)
	if err != nil {
		log.Printf("[profile] extraction call failed, using default profile: %v", err)
		return defaultProfile()
	}

	raw, ok := extractJSONObject(text)
	if !ok {
		log.Printf("[profile] no JSON object in model response, using default profile")
		return defaultProfile()
	}

	var profile models.TasteProfile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		log.Printf("[profile] failed to parse model profile, using default profile: %v", err)
		return defaultProfile()
	}
	return profile
}

// profileSummary turns a structured profile into a short conversational
// summary. Unlike extraction there is no fallback here: a failed call
// propagates to the caller.
func (s *Service) profileSummary(ctx context.Context, profile models.TasteProfile) (string, error) {
	encoded, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	user := fmt.Sprintf(`Create a friendly, conversational summary of this movie taste profile:
%s

Make it personal and engaging, as if you're talking to the person directly.
Keep it to 3-4 sentences maximum.`, string(encoded))

	summary, err := s.openai.chat(ctx,
		"You are a friendly film enthusiast who can summarize people's movie preferences in an engaging way.",
		user)
	if err != nil {
		return "", fmt.Errorf("profile summary: %w", err)
	}
	return strings.TrimSpace(summary), nil
}
