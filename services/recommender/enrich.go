package recommender

import (
	"context"
	"log"

	"github.com/sourcegraph/conc/pool"

	"cinemood/models"
)

// enrichConcurrency bounds parallel detail fetches so a burst of candidates
// doesn't hammer the TMDB API.
const enrichConcurrency = 5

// enrichCandidates fetches full details for each candidate. Fetches run
// concurrently but results keep candidate order so downstream title matching
// stays deterministic. A failed fetch drops only that movie (logged).
func (s *Service) enrichCandidates(ctx context.Context, candidates []models.CandidateMovie) []models.EnrichedMovie {
	results := make([]*models.EnrichedMovie, len(candidates))

	p := pool.New().WithMaxGoroutines(enrichConcurrency)
	for i, candidate := range candidates {
		i, candidate := i, candidate
		p.Go(func() {
			enriched, err := s.enrichMovie(ctx, candidate.ID)
			if err != nil {
				log.Printf("[enrich] skipping movie %d (%s): %v", candidate.ID, candidate.Title, err)
				return
			}
			results[i] = enriched
		})
	}
	p.Wait()

	out := make([]models.EnrichedMovie, 0, len(candidates))
	for _, r := range results {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

func (s *Service) enrichMovie(ctx context.Context, movieID int64) (*models.EnrichedMovie, error) {
	details, err := s.tmdb.movieDetails(ctx, movieID)
	if err != nil {
		return nil, err
	}

	director := "Unknown"
	if details.Credits != nil {
		for _, member := range details.Credits.Crew {
			if member.Job == "Director" {
				director = member.Name
				break
			}
		}
	}

	year := "Unknown"
	if len(details.ReleaseDate) >= 4 {
		year = details.ReleaseDate[:4]
	}

	genres := make([]string, 0, len(details.Genres))
	for _, g := range details.Genres {
		genres = append(genres, g.Name)
	}

	return &models.EnrichedMovie{
		ID:          details.ID,
		Title:       details.Title,
		Year:        year,
		Director:    director,
		Overview:    details.Overview,
		Genres:      genres,
		VoteAverage: details.VoteAverage,
		Popularity:  details.Popularity,
		PosterURL:   posterURL(details.PosterPath),
	}, nil
}
