package recommender

import (
	"context"
	"log"
	"strings"

	"cinemood/models"
)

// moodSortKeys maps known moods to TMDB sort orders. Any other mood sorts by
// descending popularity.
var moodSortKeys = map[string]string{
	"happy":      "popularity.desc",
	"sad":        "vote_average.desc",
	"relaxed":    "vote_average.desc",
	"excited":    "popularity.desc",
	"thoughtful": "vote_count.desc",
	"nostalgic":  "primary_release_date.asc",
}

const defaultSortKey = "popularity.desc"

func sortKeyForMood(mood string) string {
	if key, ok := moodSortKeys[strings.ToLower(strings.TrimSpace(mood))]; ok {
		return key
	}
	return defaultSortKey
}

// releaseRangeForDecade derives an optional release-date window from the
// profile's decade preference. Unrecognized preferences impose no filter.
func releaseRangeForDecade(preference string) (gte, lte string) {
	p := strings.ToLower(preference)
	switch {
	case strings.Contains(p, "modern"):
		return "2010-01-01", ""
	case strings.Contains(p, "classic"):
		return "", "1989-12-31"
	case strings.Contains(p, "90s"):
		return "1990-01-01", "1999-12-31"
	}
	return "", ""
}

// maxGenreFilter caps how many genre ids go into one discovery query.
const maxGenreFilter = 3

// searchCandidates runs one page of movie discovery. Transport and status
// failures are absorbed: the stage logs and returns an empty slice, which the
// driver treats the same as zero matches.
func (s *Service) searchCandidates(ctx context.Context, genreIDs []int64, mood, decadePreference string, page int) []models.CandidateMovie {
	if len(genreIDs) > maxGenreFilter {
		genreIDs = genreIDs[:maxGenreFilter]
	}
	gte, lte := releaseRangeForDecade(decadePreference)

	candidates, err := s.tmdb.discoverMovies(ctx, discoverQuery{
		genreIDs:   genreIDs,
		sortBy:     sortKeyForMood(mood),
		page:       page,
		releaseGTE: gte,
		releaseLTE: lte,
	})
	if err != nil {
		log.Printf("[discover] page %d failed, treating as empty: %v", page, err)
		return nil
	}
	return candidates
}
