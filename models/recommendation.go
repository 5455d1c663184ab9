package models

// QuizAnswer pairs a quiz question index with the user's free-text answer.
// Answers are per-session and never persisted.
type QuizAnswer struct {
	Question int    `json:"question"`
	Answer   string `json:"answer"`
}

// GenreRef is a TMDB genre reference. ID may be zero when the model returned
// only a bare genre name; the resolver maps names through a fixed table.
type GenreRef struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// TasteProfile is the structured movie-taste profile extracted from quiz
// answers. It is always fully populated: a fixed default substitutes for any
// extraction failure, so callers never see a partially-nil profile.
type TasteProfile struct {
	PreferredGenres  []GenreRef `json:"preferred_genres"`
	DislikedGenres   []GenreRef `json:"disliked_genres"`
	TonePreferences  []string   `json:"tone_preferences"`
	NarrativeStyle   string     `json:"narrative_style"`
	DecadePreference string     `json:"decade_preference"`
	ViewingContext   string     `json:"viewing_context"`
}

// CandidateMovie is a minimally-described movie from a discovery query,
// prior to detail enrichment.
type CandidateMovie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	ReleaseDate string  `json:"release_date"`
	Popularity  float64 `json:"popularity"`
}

// EnrichedMovie is a candidate movie augmented with full detail. Year is a
// 4-digit string or "Unknown"; Director is the first crew member with job
// "Director", or "Unknown".
type EnrichedMovie struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Year        string   `json:"year"`
	Director    string   `json:"director"`
	Overview    string   `json:"overview"`
	Genres      []string `json:"genres"`
	VoteAverage float64  `json:"vote_average"`
	Popularity  float64  `json:"popularity"`
	PosterURL   string   `json:"posterUrl,omitempty"`
}

// Recommendation is the ranked, explained output of the mood ranker. Text is
// the model's numbered list; MatchedIDs holds the ids of enriched movies
// whose titles occur in Text, in candidate order. It may hold fewer than 5
// entries when title matching misses some picks; partial matches are accepted.
type Recommendation struct {
	Text       string  `json:"text"`
	MatchedIDs []int64 `json:"matchedIds"`
}

// AvailabilityRecord describes where one recommended movie can be watched.
// MovieID is zero on the free-text fallback path. Rental providers carry a
// " (rent)" suffix in Providers.
type AvailabilityRecord struct {
	MovieID   int64    `json:"movieId,omitempty"`
	Title     string   `json:"title"`
	Providers []string `json:"providers"`
}

// Availability is the result of the availability stage: either a structured
// per-movie record list or free-form model text when no ids were matched.
type Availability struct {
	Records  []AvailabilityRecord `json:"records,omitempty"`
	FreeText string               `json:"freeText,omitempty"`
}
