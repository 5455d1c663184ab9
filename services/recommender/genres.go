package recommender

import (
	"strings"

	"cinemood/models"
)

// genreIDsByName maps lowercase genre names to TMDB genre ids. The same 19
// genres appear in the extraction prompt legend; "sci-fi" is an extra alias.
var genreIDsByName = map[string]int64{
	"action":          28,
	"adventure":       12,
	"animation":       16,
	"comedy":          35,
	"crime":           80,
	"documentary":     99,
	"drama":           18,
	"family":          10751,
	"fantasy":         14,
	"history":         36,
	"horror":          27,
	"music":           10402,
	"mystery":         9648,
	"romance":         10749,
	"sci-fi":          878,
	"science fiction": 878,
	"tv movie":        10770,
	"thriller":        53,
	"war":             10752,
	"western":         37,
}

// genrePromptLegend is the genre enumeration given to the model so it emits
// valid TMDB ids in extracted profiles.
const genrePromptLegend = "Action (28), Adventure (12), Animation (16), " +
	"Comedy (35), Crime (80), Documentary (99), Drama (18), Family (10751), " +
	"Fantasy (14), History (36), Horror (27), Music (10402), Mystery (9648), " +
	"Romance (10749), Science Fiction (878), TV Movie (10770), Thriller (53), " +
	"War (10752), Western (37)"

// defaultGenreIDs is the fallback when a profile carries no mappable
// preferred genres: Drama, Comedy, Action.
var defaultGenreIDs = []int64{18, 35, 28}

// resolveGenreIDs extracts TMDB genre ids from a profile's preferred genres.
// Entries with an id are used as-is; bare names go through the fixed table
// and unmapped names are dropped. An empty result falls back to the default
// set. Never fails.
func resolveGenreIDs(profile models.TasteProfile) []int64 {
	var ids []int64
	for _, genre := range profile.PreferredGenres {
		if genre.ID > 0 {
			ids = append(ids, genre.ID)
			continue
		}
		if id, ok := genreIDsByName[strings.ToLower(strings.TrimSpace(genre.Name))]; ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		ids = append(ids, defaultGenreIDs...)
	}
	return ids
}
