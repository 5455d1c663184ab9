package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"cinemood/models"
	recommenderpkg "cinemood/services/recommender"
)

// recommenderService is the narrow surface the HTTP layer needs from the
// recommendation pipeline.
type recommenderService interface {
	QuizQuestions() []string
	CreateSession() *recommenderpkg.Session
	SubmitQuiz(ctx context.Context, sessionID string, answers []models.QuizAnswer) (*models.TasteProfile, string, error)
	SetMood(sessionID, mood string) error
	Recommend(ctx context.Context, sessionID string) (*models.Recommendation, error)
	Availability(ctx context.Context, sessionID string) (*models.Availability, error)
}

var _ recommenderService = (*recommenderpkg.Service)(nil)

type RecommenderHandler struct {
	Service recommenderService
}

func NewRecommenderHandler(s recommenderService) *RecommenderHandler {
	return &RecommenderHandler{Service: s}
}

// Register mounts the recommendation API under /api.
func (h *RecommenderHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/quiz", h.GetQuiz).Methods(http.MethodGet)
	r.HandleFunc("/api/sessions", h.CreateSession).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{sessionID}/quiz", h.SubmitQuiz).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{sessionID}/mood", h.SetMood).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{sessionID}/recommendations", h.Recommend).Methods(http.MethodPost)
	r.HandleFunc("/api/sessions/{sessionID}/availability", h.Availability).Methods(http.MethodGet)
}

// GetQuiz returns the fixed personality quiz questions.
func (h *RecommenderHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"questions": h.Service.QuizQuestions()})
}

// CreateSession starts a new recommendation session.
func (h *RecommenderHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.Service.CreateSession()
	writeJSON(w, http.StatusCreated, map[string]string{"sessionId": sess.ID})
}

// SubmitQuiz accepts quiz answers and returns the extracted profile plus a
// conversational summary.
func (h *RecommenderHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionID"])

	var payload struct {
		Answers []models.QuizAnswer `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(payload.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers are required")
		return
	}

	profile, summary, err := h.Service.SubmitQuiz(r.Context(), sessionID, payload.Answers)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"profile": profile,
		"summary": summary,
	})
}

// SetMood records the user's current mood for the session.
func (h *RecommenderHandler) SetMood(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionID"])

	var payload struct {
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.SetMood(sessionID, payload.Mood); err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"mood": strings.ToLower(strings.TrimSpace(payload.Mood))})
}

// Recommend runs the recommendation pipeline for the session.
func (h *RecommenderHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionID"])

	rec, err := h.Service.Recommend(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// Availability returns watch providers for the session's last
// recommendation.
func (h *RecommenderHandler) Availability(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(mux.Vars(r)["sessionID"])

	availability, err := h.Service.Availability(r.Context(), sessionID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, availability)
}

// writeServiceError maps pipeline errors onto HTTP responses. Insufficient
// data is a friendly message, not a failure; upstream API trouble is a 502.
func (h *RecommenderHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, recommenderpkg.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, recommenderpkg.ErrProfileRequired), errors.Is(err, recommenderpkg.ErrMoodRequired), errors.Is(err, recommenderpkg.ErrNoRecommendation):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, recommenderpkg.ErrNoCandidates):
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "No movies found that match your preferences. Please try a different mood.",
		})
	case errors.Is(err, recommenderpkg.ErrNoDetails):
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Couldn't retrieve detailed movie information. Please try again later.",
		})
	default:
		log.Printf("[api] request failed: %v", err)
		writeError(w, http.StatusBadGateway, "upstream service error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
