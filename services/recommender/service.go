package recommender

import (
	"context"
	"errors"
	"log"
	"strings"

	"cinemood/config"
	"cinemood/models"
)

// Sentinel errors the HTTP layer maps to user-facing outcomes. ErrNoCandidates
// and ErrNoDetails are "try again" conditions, not server faults.
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrProfileRequired  = errors.New("complete the personality quiz first")
	ErrMoodRequired     = errors.New("share your current mood first")
	ErrNoCandidates     = errors.New("no movies found that match your preferences")
	ErrNoDetails        = errors.New("couldn't retrieve detailed movie information")
	ErrNoRecommendation = errors.New("no recommendation has been generated yet")
)

// maxCandidates caps how many discovered movies go into detail enrichment.
const maxCandidates = 10

// minFirstPageResults is the page-1 result count below which a second page
// is fetched and concatenated.
const minFirstPageResults = 5

// Service runs the recommendation pipeline: profile extraction, genre
// resolution, discovery, enrichment, mood ranking and availability, each
// stage degrading gracefully per the taxonomy in the package docs.
type Service struct {
	tmdb     *tmdbClient
	openai   *openaiClient
	titles   TitleResolver
	sessions *sessionStore
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		tmdb:     newTMDBClient(cfg.TMDBAPIKey, cfg.WatchRegion, nil),
		openai:   newOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel, nil),
		titles:   substringTitleResolver{},
		sessions: newSessionStore(),
	}
}

// QuizQuestions returns the fixed personality quiz in presentation order.
func (s *Service) QuizQuestions() []string {
	out := make([]string, len(quizQuestions))
	copy(out, quizQuestions)
	return out
}

// CreateSession starts a fresh recommendation session.
func (s *Service) CreateSession() *Session {
	return s.sessions.create()
}

// SubmitQuiz extracts a taste profile from quiz answers and generates a
// human-readable summary. Profile extraction never fails (it falls back to a
// default profile); the summary call propagates its failure.
func (s *Service) SubmitQuiz(ctx context.Context, sessionID string, answers []models.QuizAnswer) (*models.TasteProfile, string, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, "", ErrSessionNotFound
	}

	profile := s.extractProfile(ctx, answers)
	summary, err := s.profileSummary(ctx, profile)
	if err != nil {
		return nil, "", err
	}

	sess.Profile = &profile
	sess.ProfileSummary = summary
	return &profile, summary, nil
}

// SetMood records the user's current mood, normalized to lowercase. Any
// non-empty string is accepted; unknown moods get default sort behavior.
func (s *Service) SetMood(sessionID, mood string) error {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood == "" {
		return ErrMoodRequired
	}
	sess.Mood = mood
	return nil
}

// Recommend runs the full pipeline for a session that has a profile and a
// mood: discovery with a page-2 top-up when page 1 is scarce, bounded
// concurrent enrichment, then the mood-ranking model call. Empty candidate
// or detail sets surface as sentinel errors, not transport failures.
func (s *Service) Recommend(ctx context.Context, sessionID string) (*models.Recommendation, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.Profile == nil {
		return nil, ErrProfileRequired
	}
	if sess.Mood == "" {
		return nil, ErrMoodRequired
	}

	profile := *sess.Profile
	genreIDs := resolveGenreIDs(profile)

	candidates := s.searchCandidates(ctx, genreIDs, sess.Mood, profile.DecadePreference, 1)
	if len(candidates) < minFirstPageResults {
		candidates = append(candidates, s.searchCandidates(ctx, genreIDs, sess.Mood, profile.DecadePreference, 2)...)
	}
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}

	enriched := s.enrichCandidates(ctx, candidates)
	if len(enriched) == 0 {
		return nil, ErrNoDetails
	}
	log.Printf("[recommend] session=%s mood=%s candidates=%d enriched=%d", sess.ID, sess.Mood, len(candidates), len(enriched))

	rec, err := s.rankForMood(ctx, profile, sess.Mood, enriched)
	if err != nil {
		return nil, err
	}
	log.Printf("[recommend] session=%s matched %d of 5 picks to candidate ids", sess.ID, len(rec.MatchedIDs))

	sess.Enriched = enriched
	sess.LastRecommendation = rec
	return rec, nil
}

// Availability resolves watch providers for the session's last
// recommendation.
func (s *Service) Availability(ctx context.Context, sessionID string) (*models.Availability, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	if sess.LastRecommendation == nil {
		return nil, ErrNoRecommendation
	}
	return s.resolveAvailability(ctx, sess.LastRecommendation, sess.Enriched)
}
