package recommender

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"cinemood/models"
)

const noStreamingData = "No streaming data available"

// maxRentalProviders caps how many rental options are listed per movie when
// no subscription provider carries it.
const maxRentalProviders = 3

// numberedTitlePattern pulls movie titles out of a numbered recommendation
// list, stopping at an opening parenthesis (the year).
var numberedTitlePattern = regexp.MustCompile(`(?m)^\s*\d+\.\s+([^(\n]+)`)

// resolveAvailability looks up where the recommended movies can be watched.
// The branch is decided once per request: structured provider lookups when
// the recommendation carries matched ids, a model-guessed free-text answer
// otherwise. If the structured path yields no usable provider for any movie,
// the free-text branch runs instead so an all-"no data" list is never the
// final answer.
func (s *Service) resolveAvailability(ctx context.Context, rec *models.Recommendation, enriched []models.EnrichedMovie) (*models.Availability, error) {
	if len(rec.MatchedIDs) > 0 {
		records := s.lookupProviders(ctx, rec.MatchedIDs, enriched)
		if hasUsableProviders(records) {
			return &models.Availability{Records: records}, nil
		}
		log.Printf("[availability] structured lookup found no providers for any movie, falling back to model guess")
	}
	text, err := s.guessAvailability(ctx, rec.Text)
	if err != nil {
		return nil, err
	}
	return &models.Availability{FreeText: text}, nil
}

// lookupProviders fetches watch providers per matched movie. Per-movie
// lookup failures degrade to the "no data" placeholder rather than failing
// the request.
func (s *Service) lookupProviders(ctx context.Context, movieIDs []int64, enriched []models.EnrichedMovie) []models.AvailabilityRecord {
	records := make([]models.AvailabilityRecord, 0, len(movieIDs))
	for _, id := range movieIDs {
		record := models.AvailabilityRecord{
			MovieID: id,
			Title:   s.titleForMovie(ctx, id, enriched),
		}

		providers, err := s.tmdb.movieProviders(ctx, id)
		if err != nil {
			log.Printf("[availability] provider lookup failed for movie %d: %v", id, err)
		}

		for _, p := range providers.Flatrate {
			record.Providers = append(record.Providers, p.ProviderName)
		}
		if len(record.Providers) == 0 {
			for i, p := range providers.Rent {
				if i >= maxRentalProviders {
					break
				}
				record.Providers = append(record.Providers, p.ProviderName+" (rent)")
			}
		}
		if len(record.Providers) == 0 {
			record.Providers = []string{noStreamingData}
		}
		records = append(records, record)
	}
	return records
}

// titleForMovie resolves a movie title from the in-memory enriched set,
// re-fetching detail if it's somehow absent, and synthesizing a placeholder
// as a last resort.
func (s *Service) titleForMovie(ctx context.Context, movieID int64, enriched []models.EnrichedMovie) string {
	for _, m := range enriched {
		if m.ID == movieID {
			return m.Title
		}
	}
	if details, err := s.tmdb.movieDetails(ctx, movieID); err == nil && details.Title != "" {
		return details.Title
	}
	return fmt.Sprintf("Movie %d", movieID)
}

func hasUsableProviders(records []models.AvailabilityRecord) bool {
	for _, r := range records {
		for _, p := range r.Providers {
			if p != noStreamingData {
				return true
			}
		}
	}
	return false
}

// guessAvailability asks the model where the recommended movies are likely
// streaming, explicitly allowing an educated guess.
func (s *Service) guessAvailability(ctx context.Context, recommendationText string) (string, error) {
	titles := extractNumberedTitles(recommendationText)
	if len(titles) > 0 {
		log.Printf("[availability] guessing providers for %d titles from recommendation text", len(titles))
	}

	user := fmt.Sprintf(`For these recommended movies:

%s

Suggest where each might be available for streaming (Netflix, Hulu, Amazon Prime, Disney+, HBO Max, etc.).
If you're not certain, make your best educated guess based on the type of film and its age/popularity.

Format your response as a simple list showing "Movie Title - Likely available on: [services]" for each movie.`, recommendationText)

	text, err := s.openai.chat(ctx,
		"You are a helpful assistant with knowledge about movie streaming availability.",
		user)
	if err != nil {
		return "", fmt.Errorf("guess availability: %w", err)
	}
	return text, nil
}

func extractNumberedTitles(text string) []string {
	matches := numberedTitlePattern.FindAllStringSubmatch(text, -1)
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		if title := strings.TrimSpace(m[1]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}
