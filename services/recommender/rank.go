package recommender

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cinemood/models"
)

// TitleResolver recovers movie identifiers from free-form recommendation
// text. Kept as an interface so the matching strategy (exact substring,
// fuzzy, id echoing by the model) can change without touching the ranking or
// availability stages.
type TitleResolver interface {
	Resolve(text string, movies []models.EnrichedMovie) []int64
}

// substringTitleResolver matches each movie's exact title as a substring of
// the text and collects ids in candidate order, not text order. Best effort:
// title overlaps or repeats can produce false positives or misses, and a
// partial match list is accepted rather than treated as an error.
type substringTitleResolver struct{}

func (substringTitleResolver) Resolve(text string, movies []models.EnrichedMovie) []int64 {
	var ids []int64
	for _, m := range movies {
		if m.Title != "" && strings.Contains(text, m.Title) {
			ids = append(ids, m.ID)
		}
	}
	return ids
}

const rankSystemPrompt = "You are an expert film recommender with encyclopedic knowledge of cinema."

// rankForMood asks the model to pick and justify the 5 best candidates for
// the profile and mood. There is no meaningful fallback ranking, so any
// failure here propagates to the caller.
func (s *Service) rankForMood(ctx context.Context, profile models.TasteProfile, mood string, movies []models.EnrichedMovie) (*models.Recommendation, error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	moviesJSON, err := json.Marshal(movies)
	if err != nil {
		return nil, fmt.Errorf("marshal candidates: %w", err)
	}

	user := fmt.Sprintf(`Based on this user's movie taste profile:
%s

And their current mood: %s

And this list of candidate movies from TMDB:
%s

Select the 5 movies that would best match both their taste profile and current mood.
For each movie, include:
1. Title (Year)
2. Director
3. A brief explanation of why this movie matches both their taste profile and current mood

Format your response as a numbered list.`, string(profileJSON), mood, string(moviesJSON))

	text, err := s.openai.chat(ctx, rankSystemPrompt, user)
	if err != nil {
		return nil, fmt.Errorf("rank movies: %w", err)
	}

	return &models.Recommendation{
		Text:       text,
		MatchedIDs: s.titles.Resolve(text, movies),
	}, nil
}
